package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"github.com/shopspring/decimal"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// resolveLookup accepts an ID or a name of a taxonomy entry and returns
// the ID. An exact name wins over a case-insensitive one, several
// case-insensitive matches are reported. Empty value gives empty ID.
func resolveLookup(
	ctx context.Context,
	st shelf.Reader,
	tx schema.Taxonomy,
	value string,
) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	entries, err := st.LookupEntries(ctx, tx)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.ID == value || e.Name == value {
			return e.ID, nil
		}
	}

	var found []schema.LookupEntry
	for _, e := range entries {
		if strings.EqualFold(e.Name, value) {
			found = append(found, e)
		}
	}

	switch len(found) {
	case 1:
		return found[0].ID, nil
	case 0:
		return "", &gn.Error{
			Code: errcode.StoreLookupNotFoundError,
			Msg:  "Unknown %s <em>%s</em>, see 'retroshelf taxonomy list %s'",
			Vars: []any{tx.String(), value, tx.String()},
			Err:  fmt.Errorf("unknown %s %q", tx, value),
		}
	}

	names := make([]string, len(found))
	for i, e := range found {
		names[i] = e.Name
	}
	return "", &gn.Error{
		Code: errcode.StoreValidationError,
		Msg:  "Ambiguous %s <em>%s</em>, matches %s. Use the exact name or ID",
		Vars: []any{tx.String(), value, strings.Join(names, ", ")},
		Err:  fmt.Errorf("ambiguous %s %q: %d matches", tx, value, len(found)),
	}
}

// parseTaxonomy converts a command argument to a Taxonomy.
func parseTaxonomy(s string) (schema.Taxonomy, error) {
	tx, ok := schema.ParseTaxonomy(s)
	if !ok {
		return tx, &gn.Error{
			Code: errcode.StoreUnknownTaxonomyError,
			Msg:  "Unknown taxonomy <em>%s</em>, use system, category, region or authenticity",
			Vars: []any{s},
			Err:  fmt.Errorf("unknown taxonomy %q", s),
		}
	}
	return tx, nil
}

// parseMoney reads an amount typed by the user. Both "1234.5" and
// "1234,5" are accepted, empty input is zero.
func parseMoney(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	res, err := decimal.NewFromString(s)
	if err != nil {
		return res, &gn.Error{
			Code: errcode.StoreValidationError,
			Msg:  "Invalid <em>%s</em>: %s is not a number",
			Vars: []any{field, s},
			Err:  fmt.Errorf("invalid %s %q: %w", field, s, err),
		}
	}
	return res, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
