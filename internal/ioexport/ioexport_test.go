package ioexport_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/ioexport"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/report"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() report.Catalog {
	return report.Catalog{
		Currency:  "$",
		Generated: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Entries: []schema.SaleEntry{
			{ItemID: "1", Name: "Sonic", SystemName: "Mega Drive", SellingPrice: decimal.NewFromInt(40)},
		},
	}
}

func TestDefaultPath(t *testing.T) {
	path := ioexport.DefaultPath(catalog(), report.CSV)
	assert.Equal(t, os.TempDir(), filepath.Dir(path))
	assert.Equal(t, "sale-catalog-20250314-1030.csv", filepath.Base(path))
}

func TestExport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	path := filepath.Join(t.TempDir(), "catalog.txt")
	res, err := ioexport.Export(path, catalog(), report.Text)
	require.NoError(t, err)
	assert.Equal(t, path, res)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Sonic"))
	assert.Contains(t, string(data), "TOTAL")
}

func TestExport_EmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	c := catalog()
	c.Entries = nil

	_, err := ioexport.Export(path, c, report.Text)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ExportEmptyCatalogError, gnErr.Code)
	assert.NoFileExists(t, path)
}

func TestExport_BadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "catalog.csv")
	_, err := ioexport.Export(path, catalog(), report.CSV)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.WriteFileError, gnErr.Code)
}
