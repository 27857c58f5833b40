package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pawan0019/Hotel-Room-Booking/config"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TxFunc is the body of a transaction. Every statement must go through tx.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Transactor runs a function inside one store transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn TxFunc) error
}

type Connection struct {
	Read   *sqlx.DB
	Write  *sqlx.DB
	Driver string

	isolation sql.IsolationLevel
}

func New(cfg *config.Config) (*Connection, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return newPostgres(cfg)
	case config.DriverSQLite:
		return newSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

// RunInTx runs fn in a write transaction at the strictest isolation level the driver offers.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (c *Connection) RunInTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := c.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: c.isolation})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	return errors.Join(errs...)
}
