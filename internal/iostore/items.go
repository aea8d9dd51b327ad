package iostore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gnames/retroshelf/pkg/schema"
)

// normalizeFields cleans text fields and validates the item.
func normalizeFields(f schema.ItemFields) (schema.ItemFields, error) {
	f.Name = cleanText(f.Name)
	if f.Name == "" {
		return f, ValidationError("name", "item name cannot be empty")
	}
	f.SystemID = cleanText(f.SystemID)
	f.CategoryID = cleanText(f.CategoryID)
	f.RegionID = cleanText(f.RegionID)
	f.AuthenticityID = cleanText(f.AuthenticityID)
	f.ConditionNotes = cleanText(f.ConditionNotes)
	f.StorageLocation = cleanText(f.StorageLocation)

	prices := []struct {
		field string
		isNeg bool
	}{
		{"purchase price", f.PurchasePrice.IsNegative()},
		{"market value", f.MarketValue.IsNegative()},
		{"selling price", f.SellingPrice.IsNegative()},
	}
	for _, p := range prices {
		if p.isNeg {
			return f, ValidationError(p.field, "amount cannot be negative")
		}
	}
	return f, nil
}

// checkReferences makes sure the taxonomy IDs of the item exist.
// IDs equal to the ones in prev are not checked, so an item that
// points to an entry deleted by an older version stays editable.
func checkReferences(
	ctx context.Context,
	q queryer,
	f schema.ItemFields,
	prev *schema.ItemFields,
) error {
	var old schema.ItemFields
	if prev != nil {
		old = *prev
	}
	refs := []struct {
		tx      schema.Taxonomy
		id, old string
	}{
		{schema.System, f.SystemID, old.SystemID},
		{schema.Category, f.CategoryID, old.CategoryID},
		{schema.Region, f.RegionID, old.RegionID},
		{schema.Authenticity, f.AuthenticityID, old.AuthenticityID},
	}
	for _, r := range refs {
		if r.id == "" || (prev != nil && r.id == r.old) {
			continue
		}
		qs := lookupQueries[r.tx]
		var exists bool
		err := q.QueryRowContext(ctx, qs.exists, r.id).Scan(&exists)
		if err != nil {
			return QueryError("check "+r.tx.String(), err)
		}
		if !exists {
			return LookupNotFoundError(r.tx, r.id)
		}
	}
	return nil
}

// currentRefs reads the stored taxonomy IDs of an item.
func currentRefs(
	ctx context.Context,
	q queryer,
	id string,
) (schema.ItemFields, error) {
	var res schema.ItemFields
	row := q.QueryRowContext(ctx, `
		SELECT COALESCE(system_id, ''), COALESCE(category_id, ''),
			COALESCE(region_id, ''), COALESCE(authenticity_id, '')
		FROM Items
		WHERE id = ?`, id)
	err := row.Scan(
		&res.SystemID, &res.CategoryID, &res.RegionID, &res.AuthenticityID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ItemNotFoundError(id)
	}
	if err != nil {
		return res, QueryError("update item", err)
	}
	return res, nil
}

// CreateItem inserts a new Active item and returns its ID.
func (s *store) CreateItem(
	ctx context.Context,
	f schema.ItemFields,
) (string, error) {
	sqlDB, err := s.db()
	if err != nil {
		return "", err
	}
	if f, err = normalizeFields(f); err != nil {
		return "", err
	}
	if err = checkReferences(ctx, sqlDB, f, nil); err != nil {
		return "", err
	}

	id := s.newID()
	q := `
		INSERT INTO Items (
			id, name, system_id, category_id, region_id, authenticity_id,
			has_box, has_manual, is_for_sale, condition_notes,
			storage_location, purchase_price, market_value, selling_price,
			last_modified, is_deleted, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 'Active')
	`
	_, err = sqlDB.ExecContext(ctx, q,
		id, f.Name, nullString(f.SystemID), nullString(f.CategoryID),
		nullString(f.RegionID), nullString(f.AuthenticityID),
		boolInt(f.HasBox), boolInt(f.HasManual), boolInt(f.IsForSale),
		f.ConditionNotes, f.StorageLocation,
		f.PurchasePrice, f.MarketValue, f.SellingPrice,
		s.timestamp(),
	)
	if err != nil {
		return "", WriteError("create item", err)
	}

	slog.Info("Created item", "id", id, "name", f.Name)
	return id, nil
}

// UpdateItem replaces all mutable fields of an item.
func (s *store) UpdateItem(
	ctx context.Context,
	id string,
	f schema.ItemFields,
) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}
	if f, err = normalizeFields(f); err != nil {
		return err
	}
	prev, err := currentRefs(ctx, sqlDB, id)
	if err != nil {
		return err
	}
	if err = checkReferences(ctx, sqlDB, f, &prev); err != nil {
		return err
	}

	q := `
		UPDATE Items SET
			name = ?, system_id = ?, category_id = ?, region_id = ?,
			authenticity_id = ?, has_box = ?, has_manual = ?,
			is_for_sale = ?, condition_notes = ?, storage_location = ?,
			purchase_price = ?, market_value = ?, selling_price = ?,
			last_modified = ?
		WHERE id = ?
	`
	res, err := sqlDB.ExecContext(ctx, q,
		f.Name, nullString(f.SystemID), nullString(f.CategoryID),
		nullString(f.RegionID), nullString(f.AuthenticityID),
		boolInt(f.HasBox), boolInt(f.HasManual), boolInt(f.IsForSale),
		f.ConditionNotes, f.StorageLocation,
		f.PurchasePrice, f.MarketValue, f.SellingPrice,
		s.timestamp(), id,
	)
	if err != nil {
		return WriteError("update item", err)
	}
	return checkAffected(res, id, "update item")
}

// WriteOffItem marks an item as Removed. The reason is stored as
// "reason: details", or only the reason when details are empty.
func (s *store) WriteOffItem(
	ctx context.Context,
	id, reason, details string,
) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}

	reason = cleanText(reason)
	if reason == "" {
		return ValidationError("reason", "write-off reason cannot be empty")
	}
	exitReason := reason
	if details = cleanText(details); details != "" {
		exitReason = reason + ": " + details
	}

	q := `
		UPDATE Items SET
			status = 'Removed', exit_date = ?, exit_reason = ?,
			last_modified = ?
		WHERE id = ?
	`
	res, err := sqlDB.ExecContext(ctx, q,
		s.today(), exitReason, s.timestamp(), id,
	)
	if err != nil {
		return WriteError("write off item", err)
	}
	if err = checkAffected(res, id, "write off item"); err != nil {
		return err
	}

	slog.Info("Wrote off item", "id", id, "reason", exitReason)
	return nil
}

// SoftDeleteItem sets the tombstone flag of an item.
func (s *store) SoftDeleteItem(ctx context.Context, id string) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}

	q := "UPDATE Items SET is_deleted = 1, last_modified = ? WHERE id = ?"
	res, err := sqlDB.ExecContext(ctx, q, s.timestamp(), id)
	if err != nil {
		return WriteError("delete item", err)
	}
	if err = checkAffected(res, id, "delete item"); err != nil {
		return err
	}

	slog.Info("Deleted item", "id", id)
	return nil
}

// Item returns an item regardless of its visibility.
func (s *store) Item(ctx context.Context, id string) (schema.Item, error) {
	var res schema.Item
	sqlDB, err := s.db()
	if err != nil {
		return res, err
	}

	q := `
		SELECT id, COALESCE(name, ''),
			COALESCE(system_id, ''), COALESCE(category_id, ''),
			COALESCE(region_id, ''), COALESCE(authenticity_id, ''),
			COALESCE(has_box, 0), COALESCE(has_manual, 0),
			COALESCE(is_for_sale, 0),
			COALESCE(condition_notes, ''), COALESCE(storage_location, ''),
			COALESCE(purchase_price, 0), COALESCE(market_value, 0),
			COALESCE(selling_price, 0),
			COALESCE(status, 'Active'), COALESCE(is_deleted, 0),
			COALESCE(exit_date, ''), COALESCE(exit_reason, ''),
			COALESCE(image_filename, ''), last_modified
		FROM Items
		WHERE id = ?
	`
	var status string
	var modified sql.NullString
	err = sqlDB.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.Name,
		&res.SystemID, &res.CategoryID, &res.RegionID, &res.AuthenticityID,
		&res.HasBox, &res.HasManual, &res.IsForSale,
		&res.ConditionNotes, &res.StorageLocation,
		&res.PurchasePrice, &res.MarketValue, &res.SellingPrice,
		&status, &res.IsDeleted,
		&res.ExitDate, &res.ExitReason, &res.ImageFilename, &modified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ItemNotFoundError(id)
	}
	if err != nil {
		return res, QueryError("get item", err)
	}

	res.Status = schema.Status(status)
	if modified.Valid {
		res.LastModified = parseTime(modified.String)
	}
	return res, nil
}

func checkAffected(res sql.Result, id, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return WriteError(op, err)
	}
	if n == 0 {
		return ItemNotFoundError(id)
	}
	return nil
}
