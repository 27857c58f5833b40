package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func databaseURL(cfg *config.Config) (string, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
			cfg.DB.Postgres.Write.Username,
			cfg.DB.Postgres.Write.Password,
			net.JoinHostPort(cfg.DB.Postgres.Write.Host, cfg.DB.Postgres.Write.Port),
			getDBName(cfg, cfg.DB.Postgres.Write.Name),
			cfg.DB.Postgres.Write.SSLMode,
			cfg.DB.Postgres.MigrationTable,
		), nil
	case config.DriverSQLite:
		return fmt.Sprintf("sqlite3://%s?_foreign_keys=on&x-migrations-table=%s",
			cfg.DB.SQLite.Path,
			cfg.DB.Postgres.MigrationTable,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	connectionString, err := databaseURL(cfg)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.FS, sourceDir(cfg.DB.Driver))
	if err != nil {
		return nil, fmt.Errorf("error opening migration source: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func sourceDir(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}

	return "postgres"
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", config.DB.Driver).Msg("Database migrations completed successfully")

		return nil
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", config.DB.Driver).Msg("Database migrations rolled back successfully")

		return nil
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", config.DB.Driver).Msg("Database migrations completed successfully")

		return nil
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", config.DB.Driver).Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}
