package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/report"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() report.Catalog {
	return report.Catalog{
		Currency:  "R$",
		Generated: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Entries: []schema.SaleEntry{
			{
				ItemID:         "a1",
				Name:           "The Legend of Zelda: A Link to the Past (Player's Choice)",
				SystemName:     "Super Nintendo",
				CategoryName:   "Game",
				ConditionNotes: "Cartucho com etiqueta gasta",
				SellingPrice:   decimal.RequireFromString("1250.5"),
			},
			{
				ItemID:       "a2",
				Name:         "Pokémon 赤",
				SystemName:   "Game Boy",
				CategoryName: "Game",
				SellingPrice: decimal.NewFromInt(80),
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  report.Format
		ok    bool
	}{
		{"text", report.Text, true},
		{" CSV ", report.CSV, true},
		{"tsv", report.TSV, true},
		{"json", report.JSON, true},
		{"pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := report.ParseFormat(tt.input)
			if !tt.ok {
				require.Error(t, err)
				gnErr, ok := err.(*gn.Error)
				require.True(t, ok)
				assert.Equal(t, errcode.ReportFormatError, gnErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
	assert.Equal(t, "txt", report.Text.Ext())
	assert.Equal(t, "json", report.JSON.Ext())
}

func TestTruncate(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("abc", report.Truncate("abc", 5))
	assert.Equal("abcde", report.Truncate("abcdefgh", 5))
	assert.Equal("Poké", report.Truncate("Pokémon", 4), "counts characters, not bytes")
	assert.Equal("a b", report.Truncate(" a \n b ", 10))
}

func TestLatin1(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]byte("abc"), report.Latin1("abc"))
	assert.Equal([]byte{'P', 'o', 'k', 0xE9}, report.Latin1("Poké"))
	assert.Equal([]byte("?"), report.Latin1("赤"))
	assert.Equal([]byte("Caf\xe9 ? ok"), report.Latin1("Café ★ ok"))
	assert.NotContains(string(report.Latin1("Zelda – Link")), "\x1a",
		"unsupported characters become '?', not SUB")
	assert.Equal([]byte("Zelda ? Link"), report.Latin1("Zelda – Link"))
}

func TestMoney(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("R$ 1,250.50", report.Money("R$", decimal.RequireFromString("1250.5")))
	assert.Equal("80.00", report.Money("", decimal.NewFromInt(80)))
}

func TestTotal(t *testing.T) {
	c := testCatalog()
	assert.True(t, decimal.RequireFromString("1330.5").Equal(c.Total()))
	assert.True(t, report.Catalog{}.Total().IsZero())
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, testCatalog(), report.Text))
	out := buf.String()

	assert.Contains(t, out, "Sale catalog, 2025-03-14 10:30")
	assert.Contains(t, out, "The Legend of Zelda: A Link to the ")
	assert.NotContains(t, out, "Player's Choice")
	assert.Contains(t, out, "Cartucho com etiqueta ")
	assert.NotContains(t, out, "gasta")
	assert.Contains(t, out, "R$ 1,250.50")
	assert.Contains(t, out, "Pok\xe9mon ?", "latin-1 with replacement")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "TOTAL"))
	assert.Contains(t, last, "R$ 1,330.50")
	assert.Contains(t, last, "2 item(s)")
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, testCatalog(), report.CSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Item,System,Category,Notes,Price", lines[0])
	assert.Contains(t, lines[1], "1250.50")

	buf.Reset()
	require.NoError(t, report.Render(&buf, testCatalog(), report.TSV))
	assert.Contains(t, buf.String(), "ID\tItem\tSystem")
	assert.Contains(t, buf.String(), "Pokémon 赤", "TSV keeps UTF-8")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, testCatalog(), report.JSON))

	var res struct {
		Count    int    `json:"count"`
		Total    string `json:"total"`
		Currency string `json:"currency"`
		Entries  []struct {
			ID    string `json:"id"`
			Price string `json:"price"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "1330.50", res.Total)
	assert.Equal(t, "R$", res.Currency)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "a1", res.Entries[0].ID)
	assert.Equal(t, "1250.5", res.Entries[0].Price)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, testCatalog(), report.Format("pdf"))
	require.Error(t, err)
}
