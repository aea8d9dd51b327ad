// Package iodb implements database operations on a SQLite file.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/retroshelf/pkg/db"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// sqliteOperator implements db.Operator interface using
// modernc.org/sqlite.
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperator creates a new database operator
// (without opening a database).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Open opens the SQLite file at path, creating it when it does not
// exist. The application is single-user, so the handle keeps one
// connection, which also keeps in-memory databases alive between calls.
func (o *sqliteOperator) Open(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return ConnectionError(path, errEmptyPath)
	}

	dsn := path
	if path != MemoryPath {
		path = filepath.Clean(path)
		var err error
		if dsn, err = fileDSN(path); err != nil {
			return ConnectionError(path, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return ConnectionError(path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return ConnectionError(path, err)
	}

	o.db = sqlDB
	o.path = path
	slog.Debug("Opened database", "path", path)
	return nil
}

// fileDSN turns a file path into a SQLite URI. The path is escaped,
// so '?' and '#' in file names are not read as query or fragment.
func fileDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// Windows drive letter
		abs = "/" + abs
	}
	u := url.URL{
		Scheme:   "file",
		Path:     abs,
		RawQuery: "_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

// Close releases the database handle.
func (o *sqliteOperator) Close() error {
	if o.db == nil {
		return nil
	}
	err := o.db.Close()
	o.db = nil
	return err
}

// DB returns the underlying handle.
func (o *sqliteOperator) DB() *sql.DB {
	return o.db
}

// Path returns the database file path.
func (o *sqliteOperator) Path() string {
	return o.path
}

// TableExists checks if a table exists in the current
// database. SQLite table names are case-insensitive.
func (o *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ? COLLATE NOCASE
		)
	`

	var exists bool
	err := o.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any user tables.
func (o *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		)
	`

	var hasTables bool
	err := o.db.QueryRowContext(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableExistsCheckError("*", err)
	}

	return hasTables, nil
}

// Vacuum runs VACUUM and ANALYZE to reclaim space left by deleted
// images and logs and to update statistics used by the query planner.
//
// VACUUM cannot run inside a transaction block.
func (o *sqliteOperator) Vacuum(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}

	slog.Info("Running VACUUM and ANALYZE on database...")
	timeStart := time.Now()

	for _, q := range []string{"VACUUM", "ANALYZE"} {
		if _, err := o.db.ExecContext(ctx, q); err != nil {
			slog.Error("Failed to optimize database",
				"statement", q, "error", err)
			return VacuumError(o.path, err)
		}
	}

	elapsed := time.Since(timeStart)
	slog.Info("VACUUM and ANALYZE completed",
		"duration", gnfmt.TimeString(elapsed.Seconds()))

	return nil
}
