package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maitred/internal/assistant"
	"maitred/internal/confidence"
	"maitred/internal/database"
	"maitred/internal/engine"
	"maitred/internal/models"
	"maitred/internal/monitoring"
)

// ChatAPI is the HTTP surface of the action-intent engine.
type ChatAPI struct {
	Router    *gin.Engine
	Engine    *engine.Engine
	Store     *database.Store
	Responder assistant.Responder
	Monitor   *monitoring.Monitor

	jwtSecret string
}

// NewChatAPI wires the engine, store and responder behind the router.
func NewChatAPI(eng *engine.Engine, store *database.Store, responder assistant.Responder, monitor *monitoring.Monitor, jwtSecret string) *ChatAPI {
	api := &ChatAPI{
		Router:    gin.Default(),
		Engine:    eng,
		Store:     store,
		Responder: responder,
		Monitor:   monitor,
		jwtSecret: jwtSecret,
	}
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *ChatAPI) setupRoutes() {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "maitred API is running"})
	})

	a.Router.GET("/ws", a.handleWebSocket)

	v1 := a.Router.Group("/api/v1")
	if a.jwtSecret != "" {
		v1.Use(AuthMiddleware(a.jwtSecret))
	}
	{
		// Conversational engine
		v1.POST("/chat/turns", a.HandleTurn)
		v1.POST("/chat/outcomes", a.HandleOutcome)
		v1.GET("/recommendations", a.HandleRecommendations)
		v1.GET("/thresholds", a.HandleThresholds)

		// Read-only snapshots
		v1.GET("/menu", a.HandleMenu)
		v1.GET("/orders", a.HandleOpenOrders)

		// Operational
		v1.GET("/stats", a.HandleStats)
	}
}

// TurnRequest is one chat turn submitted for resolution.
type TurnRequest struct {
	Restaurant  string               `json:"restaurant"`
	SessionID   string               `json:"session_id" binding:"required"`
	TableNumber string               `json:"table_number"`
	Role        models.ChatRole      `json:"role"`
	Message     string               `json:"message" binding:"required"`
	History     []models.ChatMessage `json:"history"`
	LatencyMs   int64                `json:"latency_ms"`
}

// TurnResponse carries the engine verdict plus the conversational reply
// for turns without an action.
type TurnResponse struct {
	Intent     string                `json:"intent"`
	Action     *models.PendingAction `json:"action,omitempty"`
	Metrics    confidence.Metrics    `json:"metrics"`
	Thresholds confidence.Thresholds `json:"thresholds"`
	Reply      string                `json:"reply,omitempty"`
}

// HandleTurn resolves one chat turn end to end.
func (a *ChatAPI) HandleTurn(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	ctx, err := a.buildContext(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := a.Engine.ProcessTurn(req.Message, req.Role, ctx, req.LatencyMs)
	if a.Monitor != nil {
		a.Monitor.RecordTurnDecision(string(result.Category), string(result.Metrics.RecommendedAction))
	}

	resp := TurnResponse{
		Intent:     string(result.Category),
		Action:     result.Action,
		Metrics:    result.Metrics,
		Thresholds: a.Engine.Thresholds(ctx),
	}

	// No action: answer conversationally so the turn is never dropped.
	if result.Action == nil && a.Responder != nil && req.Role == models.RoleUser {
		reply, err := a.Responder.Reply(c.Request.Context(), ctx, req.Message)
		if err != nil {
			log.Printf("responder error for session %s: %v", req.SessionID, err)
		} else {
			resp.Reply = reply
		}
	}

	c.JSON(http.StatusOK, resp)
}

// OutcomeRequest reports how a pending action was resolved.
type OutcomeRequest struct {
	SessionID           string                  `json:"session_id" binding:"required"`
	ActionID            string                  `json:"action_id" binding:"required"`
	ActionType          string                  `json:"action_type"`
	PredictedConfidence float64                 `json:"predicted_confidence"`
	Resolution          models.ActionResolution `json:"resolution" binding:"required"`
}

// HandleOutcome feeds an action resolution back into the accuracy
// history and persists it for calibration.
func (a *ChatAPI) HandleOutcome(c *gin.Context) {
	var req OutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := req.Resolution == models.ResolutionConfirmed
	if err := a.Engine.RecordOutcome(req.SessionID, req.PredictedConfidence, success); err != nil {
		log.Printf("recording outcome for session %s: %v", req.SessionID, err)
	}

	if a.Store != nil {
		err := a.Store.SaveOutcome(&database.ActionOutcome{
			SessionID:           req.SessionID,
			ActionID:            req.ActionID,
			ActionType:          req.ActionType,
			PredictedConfidence: req.PredictedConfidence,
			Resolution:          string(req.Resolution),
			Success:             success,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Outcome recorded"})
}

// HandleRecommendations returns the ranked upsell suggestions.
func (a *ChatAPI) HandleRecommendations(c *gin.Context) {
	req := TurnRequest{
		Restaurant: c.Query("restaurant"),
		SessionID:  c.Query("session_id"),
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	ctx, err := a.buildContext(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": a.Engine.Recommend(ctx)})
}

// HandleThresholds returns the context-adjusted confidence gates.
func (a *ChatAPI) HandleThresholds(c *gin.Context) {
	req := TurnRequest{
		Restaurant: c.Query("restaurant"),
		SessionID:  c.Query("session_id"),
	}
	ctx, err := a.buildContext(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.Engine.Thresholds(ctx))
}

// HandleMenu returns the tenant's catalog snapshot.
func (a *ChatAPI) HandleMenu(c *gin.Context) {
	restaurant, err := a.resolveRestaurant(c.Query("restaurant"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	menu, err := a.Store.MenuSnapshot(restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// HandleOpenOrders returns the session's unfinished orders.
func (a *ChatAPI) HandleOpenOrders(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	orders, err := a.Store.OpenOrders(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// HandleStats returns the in-process monitor counters.
func (a *ChatAPI) HandleStats(c *gin.Context) {
	if a.Monitor == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, a.Monitor.GetMetrics())
}

// buildContext assembles the immutable snapshot the engine consumes.
func (a *ChatAPI) buildContext(req *TurnRequest) (*models.ChatContext, error) {
	restaurant, err := a.resolveRestaurant(req.Restaurant)
	if err != nil {
		return nil, err
	}

	if err := a.Store.TouchSession(restaurant.ID, req.SessionID, ""); err != nil {
		log.Printf("touching session %s: %v", req.SessionID, err)
	}

	menu, err := a.Store.MenuSnapshot(restaurant.ID)
	if err != nil {
		return nil, err
	}
	openOrders, err := a.Store.OpenOrders(req.SessionID)
	if err != nil {
		return nil, err
	}
	customer, err := a.Store.CustomerProfile(req.SessionID)
	if err != nil {
		return nil, err
	}

	currentOrderID := ""
	if len(openOrders) > 0 {
		currentOrderID = openOrders[len(openOrders)-1].ID
	}

	return &models.ChatContext{
		RestaurantID:   restaurant.Slug,
		TableNumber:    req.TableNumber,
		SessionID:      req.SessionID,
		Menu:           menu,
		History:        req.History,
		CurrentOrderID: currentOrderID,
		OpenOrders:     openOrders,
		Customer:       customer,
		Settings: models.RestaurantSettings{
			UpsellAggressiveness: restaurant.UpsellAggressiveness,
		},
	}, nil
}

func (a *ChatAPI) resolveRestaurant(slug string) (*database.Restaurant, error) {
	if slug == "" {
		slug = "demo"
	}
	return a.Store.RestaurantBySlug(slug)
}
