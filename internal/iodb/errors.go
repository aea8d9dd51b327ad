package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

var errEmptyPath = errors.New("database path is empty")

// ConnectionError is returned when the SQLite file cannot be opened.
func ConnectionError(path string, err error) error {
	msg := `Cannot open database <em>%s</em>

<em>Possible causes:</em>
  - Directory does not exist or is not writable
  - File is not a SQLite database
  - File is locked by another program

<em>How to fix:</em>
  1. Check <em>storage.db_path</em> in config.yaml
  2. Make sure the directory is writable`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open database %q: %w", path, err),
	}
}

// NotConnectedError is returned when an operation runs before Open.
func NotConnectedError() error {
	msg := "Database operation attempted without an open database"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError is returned when sqlite_master cannot be read.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// VacuumError is returned when VACUUM or ANALYZE fails.
func VacuumError(path string, err error) error {
	msg := "Cannot optimize database <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBVacuumError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to vacuum database: %w", err),
	}
}
