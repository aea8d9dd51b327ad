package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ReadMigrationsError is returned when embedded migrations
// cannot be read.
func ReadMigrationsError(err error) error {
	msg := "Cannot read embedded schema migrations"

	return &gn.Error{
		Code: errcode.SchemaReadMigrationsError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to load migrations: %w", err),
	}
}

// VersionError is returned when the migration table
// cannot be read.
func VersionError(err error) error {
	msg := "Cannot read schema version of the database"

	return &gn.Error{
		Code: errcode.SchemaVersionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to read schema version: %w", err),
	}
}

// MigrateError creates an error for a failed migration step.
func MigrateError(name string, err error) error {
	msg := `Cannot apply schema migration <em>%s</em>

<em>Possible causes:</em>
  - Database file is read-only
  - Database file is corrupted
  - Disk is full

<em>How to fix:</em>
  1. Check permissions of the database file
  2. Restore the database from a backup
  3. Check the log file for details`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("failed to apply migration %s: %w", name, err),
	}
}

// TooNewError is returned when the database was migrated by
// a newer release of the program.
func TooNewError(dbVersion, latest int) error {
	msg := `Database schema version <em>%d</em> is newer than supported <em>%d</em>

<em>How to fix:</em>
  Upgrade retroshelf to the latest release`

	return &gn.Error{
		Code: errcode.SchemaTooNewError,
		Msg:  msg,
		Vars: []any{dbVersion, latest},
		Err: fmt.Errorf(
			"schema version %d is newer than %d", dbVersion, latest,
		),
	}
}
