package ioseed

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

// ReadError is returned when a taxonomies file cannot be read
// or parsed.
func ReadError(path string, err error) error {
	msg := `Cannot load taxonomies from <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax`

	return &gn.Error{
		Code: errcode.SeedReadError,
		Msg:  msg,
		Vars: []any{path, path},
		Err:  fmt.Errorf("cannot read taxonomies %s: %w", path, err),
	}
}

// InsertError is returned when seeding fails in the database.
func InsertError(stage string, err error) error {
	msg := "Cannot insert default taxonomy entries (%s)"

	return &gn.Error{
		Code: errcode.SeedInsertError,
		Msg:  msg,
		Vars: []any{stage},
		Err:  fmt.Errorf("seed %s: %w", stage, err),
	}
}

// NotConnectedError is returned when seeding runs before the database
// is open.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Seeding attempted without an open database",
		Err:  fmt.Errorf("not connected to database"),
	}
}
