package migrations

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded SQL migrations
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a migrator for a postgres:// connection string
func NewMigrator(postgresURL string, logger zerolog.Logger) *Migrator {
	return &Migrator{databaseURL: toPgx5URL(postgresURL), logger: logger}
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", source, m.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := mg.Close(); srcErr != nil || dbErr != nil {
			m.logger.Warn().AnErr("sourceErr", srcErr).AnErr("dbErr", dbErr).Msg("Failed to close migrator")
		}
	}()

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		m.logger.Warn().Uint("version", version).Msg("Database migration state is dirty")
	} else {
		m.logger.Info().Uint("version", version).Msg("Database migrations applied")
	}
	return nil
}

// toPgx5URL rewrites a postgres:// URL to the scheme the pgx v5 driver registers.
func toPgx5URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if strings.HasPrefix(u.Scheme, "postgres") {
		u.Scheme = "pgx5"
	}
	return u.String()
}
