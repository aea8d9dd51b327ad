package report

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
)

// FormatError is returned for an unsupported output format.
func FormatError(f string) error {
	var fs []string
	for _, v := range Formats {
		fs = append(fs, string(v))
	}
	msg := "Unknown report format <em>%s</em>, use one of: %s"

	return &gn.Error{
		Code: errcode.ReportFormatError,
		Msg:  msg,
		Vars: []any{f, strings.Join(fs, ", ")},
		Err:  fmt.Errorf("unknown report format %q", f),
	}
}

// EncodeError is returned when the catalog cannot be written.
func EncodeError(f Format, err error) error {
	msg := "Cannot write %s report"

	return &gn.Error{
		Code: errcode.ReportEncodeError,
		Msg:  msg,
		Vars: []any{string(f)},
		Err:  fmt.Errorf("cannot write %s report: %w", f, err),
	}
}
