package repository

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/smartlink-app/smartlink/internal/models"
)

// Store owns the database connection. Connection health is queried through
// Ping rather than tracked in a shared flag, so the health endpoint always
// reports the current state.
type Store struct {
	db *gorm.DB
}

// OpenStore connects to the SQLite database file and returns a Store.
func OpenStore(name string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying gorm handle for the repositories.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates or updates the tables for all application models.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Link{},
		&models.Click{},
		&models.Embedding{},
	)
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}
