package ioexport

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

// EmptyCatalogError is returned when no item is marked for sale.
func EmptyCatalogError() error {
	msg := `No items are marked for sale

<em>How to fix:</em>
  Mark items with <em>retroshelf item edit ID --for-sale</em>`

	return &gn.Error{
		Code: errcode.ExportEmptyCatalogError,
		Msg:  msg,
		Err:  errors.New("sale catalog is empty"),
	}
}

// WriteError is returned when the export file cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write export file <em>%s</em>"

	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}
