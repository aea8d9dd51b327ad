/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/iodb"
	"github.com/gnames/retroshelf/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate creates the collection database or updates its schema to
the latest version.

This command:
  1. Opens the SQLite file (creating it if needed)
  2. Reads applied versions from the schema_migrations table
  3. Applies missing migrations in order, each in a transaction
  4. Preserves existing data (non-destructive)

Databases created by old releases, which have tables but no version
table, are adopted in place: missing columns are added and the single
photo of each item becomes a regular image.

Every other command migrates the database automatically, so running
it by hand is only needed to check the schema version.

Examples:
  retroshelf migrate
  retroshelf migrate --db ~/backup/collection.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args)
		},
	}

	return migrateCmd
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Create database operator
	op := iodb.NewSQLiteOperator()
	if err := op.Open(ctx, cfg.DBPath()); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Opened database: <em>%s</em>", op.Path())

	sm := ioschema.NewManager(op)
	before, err := sm.Version(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Migrating schema to latest version...")
	if err = sm.Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	after, err := sm.Version(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if before == after {
		gn.Info("Schema is already up to date (version <em>%d</em>).", after)
		return nil
	}
	gn.Info("Schema migrated from version <em>%d</em> to <em>%d</em>.",
		before, after)

	return nil
}
