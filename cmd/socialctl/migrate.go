package main

import (
	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-social-api/cmd/socialctl/ui"
	"github.com/redmonkez12/go-social-api/internal/database"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the migration bookkeeping tables",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				if err := m.Init(cmd.Context()); err != nil {
					return err
				}
				ui.PrintSuccess(cmd.OutOrStdout(), "Migration tables ready")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				group, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				ui.PrintMigrationGroup(cmd.OutOrStdout(), "migrate", group)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration group",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				group, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				ui.PrintMigrationGroup(cmd.OutOrStdout(), "roll back", group)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List applied and pending migrations",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				ms, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				ui.PrintMigrationStatus(cmd.OutOrStdout(), ms)
				return nil
			}),
		},
	)

	return migrateCmd
}

func withMigrator(fn func(*cobra.Command, *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		return fn(cmd, database.NewMigrator(a.db))
	}
}
