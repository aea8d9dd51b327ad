// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that applies embedded SQL migrations to the SQLite database.
package ioschema

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/retroshelf/pkg/db"
	"github.com/gnames/retroshelf/pkg/shelf"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// migration is one embedded NNNN_name.sql file.
type migration struct {
	version int
	name    string
	sql     string
}

// manager implements the shelf.SchemaManager interface.
type manager struct {
	operator   db.Operator
	migrations []migration
	loadErr    error
	now        func() time.Time
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) shelf.SchemaManager {
	res := &manager{operator: op, now: time.Now}
	res.migrations, res.loadErr = loadMigrations(migrationsFS, "migrations")
	return res
}

// Latest returns the version of the newest embedded migration.
func (m *manager) Latest() int {
	if len(m.migrations) == 0 {
		return 0
	}
	return m.migrations[len(m.migrations)-1].version
}

// Version returns the highest migration applied to the database.
func (m *manager) Version(ctx context.Context) (int, error) {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return 0, NotConnectedError()
	}

	exists, err := m.operator.TableExists(ctx, migrationTable)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var version sql.NullInt64
	q := "SELECT MAX(version) FROM " + migrationTable
	if err = sqlDB.QueryRowContext(ctx, q).Scan(&version); err != nil {
		return 0, VersionError(err)
	}
	return int(version.Int64), nil
}

// Migrate applies migrations that are not recorded yet. Statements
// failing with "already exists" or "duplicate column name" count as
// applied, this is how databases of old releases, which have tables
// but no migration records, get adopted.
func (m *manager) Migrate(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}
	if m.loadErr != nil {
		return ReadMigrationsError(m.loadErr)
	}

	current, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if current > m.Latest() {
		return TooNewError(current, m.Latest())
	}

	createSQL := `
CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TEXT NOT NULL
)`
	if _, err = sqlDB.ExecContext(ctx, createSQL); err != nil {
		return MigrateError("schema_migrations", err)
	}

	applied, err := m.appliedVersions(ctx, sqlDB)
	if err != nil {
		return err
	}

	var count int
	for _, mg := range m.migrations {
		if applied[mg.version] {
			continue
		}
		if err = m.apply(ctx, sqlDB, mg); err != nil {
			slog.Error("Migration failed",
				"version", mg.version, "name", mg.name, "error", err)
			return err
		}
		count++
		slog.Info("Applied migration", "version", mg.version, "name", mg.name)
	}

	if count > 0 {
		slog.Info("Database schema is up to date",
			"path", m.operator.Path(), "version", m.Latest(), "applied", count)
	}
	return nil
}

func (m *manager) apply(ctx context.Context, sqlDB *sql.DB, mg migration) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return MigrateError(mg.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, mg.sql); err != nil {
		if !IsAlreadyExistsError(err) {
			return MigrateError(mg.name, err)
		}
		slog.Debug("Migration already present in database",
			"version", mg.version, "name", mg.name)
	}

	q := "INSERT OR IGNORE INTO " + migrationTable +
		" (version, name, applied_at) VALUES (?, ?, ?)"
	stamp := m.now().UTC().Format(time.RFC3339)
	if _, err = tx.ExecContext(ctx, q, mg.version, mg.name, stamp); err != nil {
		return MigrateError(mg.name, err)
	}

	if err = tx.Commit(); err != nil {
		return MigrateError(mg.name, err)
	}
	return nil
}

func (m *manager) appliedVersions(
	ctx context.Context,
	sqlDB *sql.DB,
) (map[int]bool, error) {
	rows, err := sqlDB.QueryContext(ctx, "SELECT version FROM "+migrationTable)
	if err != nil {
		return nil, VersionError(err)
	}
	defer rows.Close()

	res := make(map[int]bool)
	for rows.Next() {
		var v int
		if err = rows.Scan(&v); err != nil {
			return nil, VersionError(err)
		}
		res[v] = true
	}
	if err = rows.Err(); err != nil {
		return nil, VersionError(err)
	}
	return res, nil
}

// IsAlreadyExistsError reports whether this error indicates idempotent
// DDL success.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") ||
		strings.Contains(value, "duplicate column name")
}

// loadMigrations reads NNNN_name.sql files from dir sorted by version.
func loadMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var res []migration
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".sql")
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", e.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s has bad version %q", e.Name(), prefix)
		}
		if other, ok := seen[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d",
				other, e.Name(), version)
		}
		seen[version] = e.Name()

		content, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return nil, errors.New("migration " + e.Name() + " is empty")
		}
		res = append(res, migration{version: version, name: name, sql: string(content)})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].version < res[j].version
	})
	return res, nil
}
