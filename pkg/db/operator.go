package db

import (
	"context"
	"database/sql"
)

// Operator defines the interface for basic database management operations.
// It owns the lifecycle of the SQLite handle and exposes *sql.DB for
// high-level components (SchemaManager, Store) that run their own
// statements.
//
// The handle is created by the composition root (CLI command or test),
// passed explicitly to every component and closed by its creator.
type Operator interface {
	// Open opens (creating if needed) the SQLite file at path.
	// Use ":memory:" for a private in-memory database.
	Open(ctx context.Context, path string) error

	// Close closes the database handle.
	Close() error

	// DB returns the underlying handle, nil if Open was not called.
	DB() *sql.DB

	// Path returns the file the operator is connected to.
	Path() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any user tables.
	HasTables(ctx context.Context) (bool, error)

	// Vacuum rebuilds the database file and refreshes query planner
	// statistics.
	Vacuum(ctx context.Context) error
}
