package iostore

import (
	"context"
	"database/sql"

	"github.com/gnames/retroshelf/pkg/schema"
)

// SystemsWithCount returns systems having visible items.
func (s *store) SystemsWithCount(
	ctx context.Context,
) ([]schema.TaxonomyCount, error) {
	q := `
		SELECT s.id, COALESCE(s.name, ''), COUNT(i.id)
		FROM Systems s
		JOIN Items i ON i.system_id = s.id
		WHERE ` + visible + `
		GROUP BY s.id, s.name
		ORDER BY s.name
	`
	return s.taxonomyCounts(ctx, "systems with count", q)
}

// CategoriesInSystem returns categories of visible items of a system.
func (s *store) CategoriesInSystem(
	ctx context.Context,
	systemID string,
) ([]schema.TaxonomyCount, error) {
	if systemID == "" {
		return nil, ValidationError("system", "system ID is required")
	}
	q := `
		SELECT c.id, COALESCE(c.name, ''), COUNT(i.id)
		FROM Categories c
		JOIN Items i ON i.category_id = c.id
		WHERE i.system_id = ? AND ` + visible + `
		GROUP BY c.id, c.name
		ORDER BY c.name
	`
	return s.taxonomyCounts(ctx, "categories in system", q, systemID)
}

func (s *store) taxonomyCounts(
	ctx context.Context,
	op, q string,
	args ...any,
) ([]schema.TaxonomyCount, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(op, err)
	}
	defer rows.Close()

	var res []schema.TaxonomyCount
	for rows.Next() {
		var tc schema.TaxonomyCount
		if err = rows.Scan(&tc.ID, &tc.Name, &tc.Count); err != nil {
			return nil, QueryError(op, err)
		}
		res = append(res, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(op, err)
	}
	return res, nil
}

// SearchItems finds visible items which names contain the query.
// Wildcards typed by the user match literally.
func (s *store) SearchItems(
	ctx context.Context,
	query string,
) ([]schema.ItemSummary, error) {
	q := `
		SELECT i.id, COALESCE(i.name, ''), COALESCE(s.name, ''),
			COALESCE(i.status, 'Active')
		FROM Items i
		LEFT JOIN Systems s ON i.system_id = s.id
		WHERE i.name LIKE ? ESCAPE '\' AND ` + visible + `
		ORDER BY i.name
		LIMIT ?
	`
	pattern := "%" + escapeLike(cleanText(query)) + "%"
	return s.summaries(ctx, "search items", q, pattern, searchLimit)
}

// ItemsByTaxonomy lists visible items of a system and a category.
func (s *store) ItemsByTaxonomy(
	ctx context.Context,
	systemID, categoryID string,
) ([]schema.ItemSummary, error) {
	if systemID == "" {
		return nil, ValidationError("system", "system ID is required")
	}
	if categoryID == "" {
		return nil, ValidationError("category", "category ID is required")
	}

	q := `
		SELECT i.id, COALESCE(i.name, ''), COALESCE(s.name, ''),
			COALESCE(i.status, 'Active')
		FROM Items i
		LEFT JOIN Systems s ON i.system_id = s.id
		WHERE i.system_id = ? AND i.category_id = ? AND ` + visible + `
		ORDER BY i.name
	`
	return s.summaries(ctx, "items by taxonomy", q, systemID, categoryID)
}

func (s *store) summaries(
	ctx context.Context,
	op, q string,
	args ...any,
) ([]schema.ItemSummary, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(op, err)
	}
	defer rows.Close()

	var res []schema.ItemSummary
	for rows.Next() {
		var sm schema.ItemSummary
		var status string
		if err = rows.Scan(&sm.ID, &sm.Name, &sm.SystemName, &status); err != nil {
			return nil, QueryError(op, err)
		}
		sm.Status = schema.Status(status)
		res = append(res, sm)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(op, err)
	}
	return res, nil
}

// SaleCatalog lists visible items marked for sale.
func (s *store) SaleCatalog(ctx context.Context) ([]schema.SaleEntry, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}

	q := `
		SELECT i.id, COALESCE(i.name, ''), COALESCE(s.name, ''),
			COALESCE(c.name, ''), COALESCE(i.condition_notes, ''),
			COALESCE(i.selling_price, 0)
		FROM Items i
		LEFT JOIN Systems s ON i.system_id = s.id
		LEFT JOIN Categories c ON i.category_id = c.id
		WHERE i.is_for_sale = 1 AND ` + visible + `
		ORDER BY s.name, i.name
	`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError("sale catalog", err)
	}
	defer rows.Close()

	var res []schema.SaleEntry
	for rows.Next() {
		var e schema.SaleEntry
		err = rows.Scan(
			&e.ItemID, &e.Name, &e.SystemName, &e.CategoryName,
			&e.ConditionNotes, &e.SellingPrice,
		)
		if err != nil {
			return nil, QueryError("sale catalog", err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("sale catalog", err)
	}
	return res, nil
}

// Stats returns count and money totals of visible items. Totals stay
// NULL when nothing is visible.
func (s *store) Stats(ctx context.Context) (schema.Stats, error) {
	var res schema.Stats
	sqlDB, err := s.db()
	if err != nil {
		return res, err
	}

	q := `
		SELECT COUNT(*), SUM(i.purchase_price), SUM(i.market_value)
		FROM Items i
		WHERE ` + visible
	var count sql.NullInt64
	err = sqlDB.QueryRowContext(ctx, q).Scan(
		&count, &res.PurchaseTotal, &res.MarketTotal,
	)
	if err != nil {
		return res, QueryError("stats", err)
	}
	res.Count = int(count.Int64)
	return res, nil
}
