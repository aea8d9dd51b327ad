package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/retroshelf/pkg/report"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetReportCmd_Flags verifies export flags of the report command.
func TestGetReportCmd_Flags(t *testing.T) {
	cmd := getReportCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "report", cmd.Use)

	export := cmd.Flags().Lookup("export")
	require.NotNil(t, export)
	assert.Equal(t, "e", export.Shorthand)
	assert.Equal(t, exportDefault, export.NoOptDefVal,
		"--export without a value uses the default path")

	format := cmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "f", format.Shorthand)
	assert.Equal(t, "", format.DefValue)

	assert.Contains(t, cmd.Long, "sale-catalog-YYYYMMDD-HHMM")
}

func TestPrintReport(t *testing.T) {
	cmd := getReportCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	stats := schema.Stats{
		Count: 1200,
		PurchaseTotal: decimal.NullDecimal{
			Decimal: decimal.RequireFromString("1500.5"),
			Valid:   true,
		},
	}
	c := report.Catalog{
		Currency: "R$",
		Entries: []schema.SaleEntry{
			{
				Name:         "Chrono Trigger",
				SystemName:   "Super Nintendo",
				CategoryName: "Game",
				SellingPrice: decimal.NewFromInt(200),
			},
		},
	}
	printReport(cmd, stats, c)

	out := buf.String()
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "R$ 1,500.50")
	assert.Contains(t, out, "Market value:")
	assert.Contains(t, out, "R$ 200")
	assert.Contains(t, out, "Chrono Trigger")
	assert.Contains(t, out, "Super Nintendo")
}

func TestPrintReport_Empty(t *testing.T) {
	cmd := getReportCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	printReport(cmd, schema.Stats{}, report.Catalog{Currency: "$"})

	out := buf.String()
	assert.Contains(t, out, "Items in collection:")
	assert.Contains(t, out, "$ 0")
	assert.NotContains(t, out, "ITEM")
}
