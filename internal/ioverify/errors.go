package ioverify

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

// CheckError is returned when a file or the image directory cannot be
// inspected.
func CheckError(path string, err error) error {
	msg := "Cannot check image file <em>%s</em>"

	return &gn.Error{
		Code: errcode.VerifyImagesError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot check %s: %w", path, err),
	}
}
