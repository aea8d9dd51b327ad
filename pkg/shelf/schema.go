// Package shelf defines the contracts of the collection database:
// schema management and the repository of items, lookups, images and
// maintenance logs. Implementations live in internal/.
package shelf

import "context"

// SchemaManager defines the interface for database schema management.
// Migrations are ordered, versioned and recorded in the database.
// Schema management is idempotent - safe to run multiple times.
// The database operator is provided during construction via NewManager.
type SchemaManager interface {
	// Migrate applies all migrations that are not recorded yet,
	// in ascending order, each in its own transaction. A database
	// created by an old release without the version table is adopted
	// in place.
	Migrate(ctx context.Context) error

	// Version returns the highest applied migration, or 0 for a fresh
	// database.
	Version(ctx context.Context) (int, error)

	// Latest returns the version of the newest embedded migration.
	Latest() int
}

// Seeder inserts default taxonomy entries.
type Seeder interface {
	// Seed adds entries whose names are missing in their taxonomy and
	// returns how many were inserted. Existing entries are not changed.
	Seed(ctx context.Context) (int, error)
}
