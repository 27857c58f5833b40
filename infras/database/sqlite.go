package database

//nolint:revive
import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Pawan0019/Hotel-Room-Booking/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	sqliteBusyTimeoutMs     = 5000
	sqliteMaxOpenConnection = 8
	sqliteDirPermission     = 0o755
)

// SQLiteDSN builds the DSN for a database file. Write transactions take the database lock on
// BEGIN, which serializes them the way a serializable isolation level would.
func SQLiteDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_txlock=immediate&_busy_timeout=%d&_foreign_keys=on&_journal_mode=WAL",
		path,
		sqliteBusyTimeoutMs,
	)
}

func newSQLite(cfg *config.Config) (*Connection, error) {
	path := cfg.DB.SQLite.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, sqliteDirPermission); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect(config.DriverSQLite, SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(sqliteMaxOpenConnection)

	log.Info().Str("path", path).Msg("Connected to database")

	return &Connection{
		Read:      db,
		Write:     db,
		Driver:    config.DriverSQLite,
		isolation: sql.LevelDefault,
	}, nil
}
