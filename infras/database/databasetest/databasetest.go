// Package databasetest opens migrated throwaway databases for integration tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/helper"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"

	"github.com/stretchr/testify/require"
)

// Config returns a configuration pointing at a fresh SQLite file in the test's temp dir.
func Config(t testing.TB) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.Path = filepath.Join(t.TempDir(), "hotel.db")
	cfg.DB.Tx.MaxRetry = 3
	cfg.DB.Tx.InitialDelayMs = 1
	cfg.DB.Tx.MaxDelayMs = 20

	return cfg
}

// NewSQLite migrates a fresh SQLite database and returns a connection to it.
func NewSQLite(t testing.TB) *database.Connection {
	t.Helper()

	cfg := Config(t)

	require.NoError(t, helper.Up(cfg))

	conn, err := database.New(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
