// Package ioexport writes the rendered sale catalog to a file.
package ioexport

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/retroshelf/pkg/report"
)

// DefaultPath returns the export file used when no path is given:
// a timestamped file in the temporary directory.
func DefaultPath(c report.Catalog, f report.Format) string {
	name := "sale-catalog-" + c.Generated.Format("20060102-1504") + "." + f.Ext()
	return filepath.Join(os.TempDir(), name)
}

// Export renders the catalog into path and returns the path. An empty
// path means DefaultPath. A catalog without entries is refused.
func Export(path string, c report.Catalog, f report.Format) (string, error) {
	if len(c.Entries) == 0 {
		return "", EmptyCatalogError()
	}
	if path == "" {
		path = DefaultPath(c, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", WriteError(path, err)
	}

	w := bufio.NewWriter(file)
	if err = report.Render(w, c, f); err != nil {
		_ = file.Close()
		return "", err
	}
	if err = w.Flush(); err != nil {
		_ = file.Close()
		return "", WriteError(path, err)
	}
	if err = file.Close(); err != nil {
		return "", WriteError(path, err)
	}

	var size uint64
	if fi, err := os.Stat(path); err == nil {
		size = uint64(fi.Size())
	}
	slog.Info("Exported sale catalog",
		"path", path,
		"format", string(f),
		"items", len(c.Entries),
		"size", humanize.Bytes(size),
	)
	return path, nil
}
