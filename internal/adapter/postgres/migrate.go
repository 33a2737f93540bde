package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

// MigrationState is one migration's applied state.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// Migrator applies goose migrations from fsys to the database at dsn.
// goose needs *sql.DB, so it opens its own short-lived connection.
type Migrator struct {
	dsn  string
	fsys fs.FS
}

// NewMigrator creates a Migrator.
func NewMigrator(dsn string, fsys fs.FS) *Migrator {
	return &Migrator{dsn: dsn, fsys: fsys}
}

// Up applies all pending migrations and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	var applied int
	err := m.withProvider(ctx, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		applied = len(results)
		return err
	})
	if err != nil {
		return applied, fmt.Errorf("migrate up: %w", err)
	}
	return applied, nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	err := m.withProvider(ctx, func(p *goose.Provider) error {
		_, err := p.Down(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status lists every known migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	var states []MigrationState
	err := m.withProvider(ctx, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		states = make([]MigrationState, 0, len(statuses))
		for _, s := range statuses {
			states = append(states, MigrationState{
				Version: s.Source.Version,
				Path:    s.Source.Path,
				Applied: s.State == goose.StateApplied,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("migrate status: %w", err)
	}
	return states, nil
}

func (m *Migrator) withProvider(ctx context.Context, fn func(p *goose.Provider) error) error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	// NewProvider handles $$-delimited bodies, unlike the legacy goose.Up.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, m.fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	return fn(provider)
}
