package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/redmonkez12/go-social-api/internal/database/migrations"
)

// Migrator applies the embedded schema migrations.
type Migrator struct {
	migrator *migrate.Migrator
}

func NewMigrator(db *bun.DB) *Migrator {
	return &Migrator{migrator: migrate.NewMigrator(db, migrations.Migrations)}
}

// Init creates the bookkeeping tables used by the migrator
func (m *Migrator) Init(ctx context.Context) error {
	if err := m.migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	return nil
}

// Up applies all pending migrations as one group.
// The returned group is empty when there was nothing to apply.
func (m *Migrator) Up(ctx context.Context) (*migrate.MigrationGroup, error) {
	if err := m.migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer m.migrator.Unlock(ctx) //nolint:errcheck

	group, err := m.migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return group, nil
}

// Down rolls back the last applied group
func (m *Migrator) Down(ctx context.Context) (*migrate.MigrationGroup, error) {
	if err := m.migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer m.migrator.Unlock(ctx) //nolint:errcheck

	group, err := m.migrator.Rollback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rollback: %w", err)
	}
	return group, nil
}

func (m *Migrator) Status(ctx context.Context) (migrate.MigrationSlice, error) {
	ms, err := m.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}
	return ms, nil
}
