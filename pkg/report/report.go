// Package report renders the sale catalog of the collection as a
// fixed-width text table, CSV, TSV or JSON. The text table is encoded
// as ISO-8859-1, so it prints on simple receipt printers and opens in
// any text editor.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Format of the rendered catalog.
type Format string

const (
	Text Format = "text"
	CSV  Format = "csv"
	TSV  Format = "tsv"
	JSON Format = "json"
)

// Formats lists all supported formats.
var Formats = []Format{Text, CSV, TSV, JSON}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", FormatError(s)
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == Text {
		return "txt"
	}
	return string(f)
}

// Column widths of the text table.
const (
	itemWidth     = 35
	systemWidth   = 15
	categoryWidth = 15
	notesWidth    = 22
	priceWidth    = 14
)

// Catalog is the sale catalog ready for rendering.
type Catalog struct {
	Entries   []schema.SaleEntry `json:"entries"`
	Currency  string             `json:"currency"`
	Generated time.Time          `json:"generated"`
}

// Total returns the sum of selling prices.
func (c Catalog) Total() decimal.Decimal {
	res := decimal.Zero
	for _, e := range c.Entries {
		res = res.Add(e.SellingPrice)
	}
	return res
}

// Money formats an amount with thousands separators, two decimals
// and the currency symbol.
func Money(currency string, d decimal.Decimal) string {
	res := humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
	if currency == "" {
		return res
	}
	return currency + " " + res
}

// Render writes the catalog in the given format.
func Render(w io.Writer, c Catalog, f Format) error {
	switch f {
	case Text:
		return renderText(w, c)
	case CSV:
		return renderCSV(w, c, ',')
	case TSV:
		return renderCSV(w, c, '\t')
	case JSON:
		return renderJSON(w, c)
	default:
		return FormatError(string(f))
	}
}

func renderText(w io.Writer, c Catalog) error {
	var b strings.Builder
	line := strings.Repeat("-",
		itemWidth+systemWidth+categoryWidth+notesWidth+priceWidth+4)

	fmt.Fprintf(&b, "Sale catalog, %s\n\n", c.Generated.Format("2006-01-02 15:04"))
	b.WriteString(row("Item", "System", "Category", "Notes", "Price"))
	b.WriteString(line + "\n")
	for _, e := range c.Entries {
		b.WriteString(row(
			e.Name, e.SystemName, e.CategoryName, e.ConditionNotes,
			Money(c.Currency, e.SellingPrice),
		))
	}
	b.WriteString(line + "\n")
	b.WriteString(row(
		"TOTAL", "", "", humanize.Comma(int64(len(c.Entries)))+" item(s)",
		Money(c.Currency, c.Total()),
	))

	_, err := w.Write(Latin1(b.String()))
	if err != nil {
		return EncodeError(Text, err)
	}
	return nil
}

func row(item, system, category, notes, price string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %*s\n",
		itemWidth, Truncate(item, itemWidth),
		systemWidth, Truncate(system, systemWidth),
		categoryWidth, Truncate(category, categoryWidth),
		notesWidth, Truncate(notes, notesWidth),
		priceWidth, price,
	)
}

// Truncate cuts s to at most width characters.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	rs := []rune(s)
	if len(rs) <= width {
		return s
	}
	return string(rs[:width])
}

// Latin1 encodes s as ISO-8859-1. Characters outside of the charset
// become '?'.
func Latin1(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	res, err := enc.Bytes([]byte(s))
	if err != nil {
		res = []byte(strings.Map(asciiOrQuestion, s))
	}
	// the replacing encoder substitutes with ASCII SUB
	return bytes.ReplaceAll(res, []byte{asciiSub}, []byte{'?'})
}

const asciiSub = 0x1A

func asciiOrQuestion(r rune) rune {
	if r < 0x80 {
		return r
	}
	return '?'
}

func renderCSV(w io.Writer, c Catalog, sep rune) error {
	f := CSV
	if sep == '\t' {
		f = TSV
	}
	header := []string{"ID", "Item", "System", "Category", "Notes", "Price"}
	if _, err := fmt.Fprintln(w, csvLine(header, sep)); err != nil {
		return EncodeError(f, err)
	}
	for _, e := range c.Entries {
		rec := []string{
			e.ItemID, e.Name, e.SystemName, e.CategoryName,
			e.ConditionNotes, e.SellingPrice.StringFixed(2),
		}
		if _, err := fmt.Fprintln(w, csvLine(rec, sep)); err != nil {
			return EncodeError(f, err)
		}
	}
	return nil
}

func csvLine(rec []string, sep rune) string {
	return strings.TrimRight(gnfmt.ToCSV(rec, sep), "\r\n")
}

type jsonCatalog struct {
	Catalog
	Count int    `json:"count"`
	Total string `json:"total"`
}

func renderJSON(w io.Writer, c Catalog) error {
	if c.Entries == nil {
		c.Entries = []schema.SaleEntry{}
	}
	out := jsonCatalog{
		Catalog: c,
		Count:   len(c.Entries),
		Total:   c.Total().StringFixed(2),
	}
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(out)
	if err != nil {
		return EncodeError(JSON, err)
	}
	if _, err = w.Write(append(res, '\n')); err != nil {
		return EncodeError(JSON, err)
	}
	return nil
}
