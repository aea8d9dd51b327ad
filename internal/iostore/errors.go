package iostore

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/schema"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// NotConnectedError is returned when the store has no open database.
func NotConnectedError() error {
	msg := "Store operation attempted without an open database"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ValidationError is returned when input is rejected before any
// storage access.
func ValidationError(field, reason string) error {
	msg := "Invalid <em>%s</em>: %s"

	return &gn.Error{
		Code: errcode.StoreValidationError,
		Msg:  msg,
		Vars: []any{field, reason},
		Err:  fmt.Errorf("invalid %s: %s", field, reason),
	}
}

// UnknownTaxonomyError is returned for a taxonomy outside of the four
// known ones.
func UnknownTaxonomyError(tx schema.Taxonomy) error {
	msg := "Unknown taxonomy <em>%d</em>"

	return &gn.Error{
		Code: errcode.StoreUnknownTaxonomyError,
		Msg:  msg,
		Vars: []any{int(tx)},
		Err:  fmt.Errorf("unknown taxonomy %d", int(tx)),
	}
}

// ImageLimitError is returned when an item already has the maximum
// number of images.
func ImageLimitError(itemID string, limit int) error {
	msg := "Item <em>%s</em> already has %d images, delete one first"

	return &gn.Error{
		Code: errcode.StoreImageLimitError,
		Msg:  msg,
		Vars: []any{itemID, limit},
		Err:  fmt.Errorf("item %s reached the limit of %d images", itemID, limit),
	}
}

// ItemNotFoundError is returned when there is no item with the ID.
func ItemNotFoundError(id string) error {
	msg := "Item <em>%s</em> not found"

	return &gn.Error{
		Code: errcode.StoreItemNotFoundError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("item %s not found", id),
	}
}

// ImageNotFoundError is returned when there is no image with the ID.
func ImageNotFoundError(id string) error {
	msg := "Image <em>%s</em> not found"

	return &gn.Error{
		Code: errcode.StoreImageNotFoundError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("image %s not found", id),
	}
}

// LookupNotFoundError is returned when there is no entry with the ID
// in the taxonomy.
func LookupNotFoundError(tx schema.Taxonomy, id string) error {
	msg := "No %s with ID <em>%s</em>"

	return &gn.Error{
		Code: errcode.StoreLookupNotFoundError,
		Msg:  msg,
		Vars: []any{tx.String(), id},
		Err:  fmt.Errorf("%s %s not found", tx, id),
	}
}

// LookupDuplicateError is returned when the name is already used in
// the taxonomy.
func LookupDuplicateError(tx schema.Taxonomy, name string, err error) error {
	msg := "A %s named <em>%s</em> already exists"

	return &gn.Error{
		Code: errcode.StoreLookupDuplicateError,
		Msg:  msg,
		Vars: []any{tx.String(), name},
		Err:  fmt.Errorf("duplicate %s %q: %w", tx, name, err),
	}
}

// LookupInUseError is returned when a lookup entry is still
// referenced by items of the collection.
func LookupInUseError(tx schema.Taxonomy, id string, count int) error {
	msg := `Cannot delete %s <em>%s</em>, it is used by %d item(s)

<em>How to fix:</em>
  Reassign or delete these items first`

	return &gn.Error{
		Code: errcode.StoreLookupInUseError,
		Msg:  msg,
		Vars: []any{tx.String(), id, count},
		Err:  fmt.Errorf("%s %s is used by %d items", tx, id, count),
	}
}

// QueryError is returned when a read fails in the storage.
func QueryError(op string, err error) error {
	msg := "Cannot read collection data (%s)"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("query %s: %w", op, err),
	}
}

// WriteError is returned when a write fails in the storage.
func WriteError(op string, err error) error {
	msg := "Cannot save collection data (%s)"

	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("write %s: %w", op, err),
	}
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY,
			sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
