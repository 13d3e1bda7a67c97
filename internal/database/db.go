package database

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Open connects to the configured database. A URL starting with
// "postgres" selects PostgreSQL; anything else is treated as a SQLite
// file path, which keeps local development dependency-free.
func Open(databaseURL string) (*gorm.DB, error) {
	dialect := "sqlite3"
	if strings.HasPrefix(databaseURL, "postgres") {
		dialect = "postgres"
	}

	db, err := gorm.Open(dialect, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect, err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all store entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Restaurant{},
		&MenuItem{},
		&Order{},
		&OrderItem{},
		&ChatSession{},
		&ActionOutcome{},
	).Error
}
