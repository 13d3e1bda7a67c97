package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"

	"maitred/internal/models"
)

// Restaurant is a tenant of the platform.
type Restaurant struct {
	gorm.Model
	Slug                 string `gorm:"unique_index"`
	Name                 string
	UpsellAggressiveness float64
}

// MenuItem is the persisted menu row behind a MenuItemRef snapshot.
type MenuItem struct {
	gorm.Model
	RestaurantID uint
	ExternalID   string `gorm:"unique_index"`
	Name         string
	Description  string
	Category     string
	Price        float64
	DietaryTags  string // comma-separated
	Available    bool
}

// Order is a placed order within a chat session.
type Order struct {
	gorm.Model
	RestaurantID uint
	SessionID    string
	Code         string `gorm:"unique_index"` // six-character guest-facing code
	Status       string
	TableNumber  string
	Total        float64
	Items        []OrderItem `gorm:"foreignkey:OrderID"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	gorm.Model
	OrderID    uint
	MenuItemID string
	Name       string
	Quantity   int
	UnitPrice  float64
	Notes      string
}

// ChatSession summarizes one guest conversation.
type ChatSession struct {
	gorm.Model
	RestaurantID uint
	SessionID    string `gorm:"unique_index"`
	CustomerName string
	StartedAt    time.Time
	TotalOrders  int
	TotalSpent   float64
}

// ActionOutcome records how a pending action was resolved, for
// warm-starting accuracy history and offline calibration.
type ActionOutcome struct {
	gorm.Model
	SessionID           string `gorm:"index"`
	ActionID            string
	ActionType          string
	PredictedConfidence float64
	Resolution          string
	Success             bool
}

// Store is the read-mostly data-access layer feeding the engine its
// context snapshots. The engine itself never sees gorm types.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// MenuSnapshot loads the catalog for a restaurant as engine-facing refs.
func (s *Store) MenuSnapshot(restaurantID uint) ([]models.MenuItemRef, error) {
	var rows []MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading menu for restaurant %d: %w", restaurantID, err)
	}

	refs := make([]models.MenuItemRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, models.MenuItemRef{
			ID:          row.ExternalID,
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			Price:       row.Price,
			DietaryTags: splitTags(row.DietaryTags),
			Available:   row.Available,
		})
	}
	return refs, nil
}

// OpenOrders loads the session's unfinished orders as snapshots.
func (s *Store) OpenOrders(sessionID string) ([]models.OrderSnapshot, error) {
	var rows []Order
	err := s.db.Preload("Items").
		Where("session_id = ? AND status IN (?)", sessionID,
			[]string{string(models.OrderStatusPending), string(models.OrderStatusConfirmed), string(models.OrderStatusPreparing)}).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading open orders for session %s: %w", sessionID, err)
	}

	snapshots := make([]models.OrderSnapshot, 0, len(rows))
	for _, row := range rows {
		items := make([]models.ParsedOrderItem, 0, len(row.Items))
		for _, item := range row.Items {
			items = append(items, models.ParsedOrderItem{
				MenuItemID: item.MenuItemID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				Notes:      item.Notes,
			})
		}
		snapshots = append(snapshots, models.OrderSnapshot{
			ID:          row.Code,
			Status:      models.OrderStatus(row.Status),
			Items:       items,
			Total:       row.Total,
			Editable:    row.Status == string(models.OrderStatusPending),
			TableNumber: row.TableNumber,
			PlacedAt:    row.CreatedAt,
		})
	}
	return snapshots, nil
}

// CustomerProfile loads the session summary, or nil when the session is
// unknown; the engine degrades gracefully either way.
func (s *Store) CustomerProfile(sessionID string) (*models.CustomerProfile, error) {
	var row ChatSession
	err := s.db.Where("session_id = ?", sessionID).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	return &models.CustomerProfile{
		Name:        row.CustomerName,
		SessionID:   row.SessionID,
		StartedAt:   row.StartedAt,
		TotalOrders: row.TotalOrders,
		TotalSpent:  row.TotalSpent,
	}, nil
}

// RestaurantBySlug resolves a tenant.
func (s *Store) RestaurantBySlug(slug string) (*Restaurant, error) {
	var row Restaurant
	if err := s.db.Where("slug = ?", slug).First(&row).Error; err != nil {
		return nil, fmt.Errorf("loading restaurant %q: %w", slug, err)
	}
	return &row, nil
}

// SaveOutcome persists a resolved action for calibration.
func (s *Store) SaveOutcome(outcome *ActionOutcome) error {
	if err := s.db.Create(outcome).Error; err != nil {
		return fmt.Errorf("saving outcome for action %s: %w", outcome.ActionID, err)
	}
	return nil
}

// TouchSession upserts the session summary at conversation start.
func (s *Store) TouchSession(restaurantID uint, sessionID, customerName string) error {
	var row ChatSession
	err := s.db.Where("session_id = ?", sessionID).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return s.db.Create(&ChatSession{
			RestaurantID: restaurantID,
			SessionID:    sessionID,
			CustomerName: customerName,
			StartedAt:    time.Now(),
		}).Error
	}
	return err
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
