// Package testutil opens isolated in-memory databases for tests.
package testutil

import (
	"context"
	"quizapp/internal/config"
	"quizapp/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, empty in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewSeededDB is NewDB plus the five sample questions.
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	n, err := database.SeedQuestions(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	return db
}

// TestConfig is a gin test-mode config with a generous rate limit.
func TestConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Database:  config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}
}
