package iostore

import (
	"context"
	"log/slog"

	"github.com/gnames/retroshelf/pkg/schema"
)

// lookupSQL keeps statements of one taxonomy. They are built once from
// the closed set of taxonomies, so no caller input becomes part of
// a statement.
type lookupSQL struct {
	list, exists, insert, rename, delete string
	inUse, release                       string
}

var lookupQueries = func() map[schema.Taxonomy]lookupSQL {
	res := make(map[schema.Taxonomy]lookupSQL, len(schema.Taxonomies))
	for _, tx := range schema.Taxonomies {
		tbl, col := tx.Table(), tx.Column()
		res[tx] = lookupSQL{
			list:   "SELECT id, COALESCE(name, '') FROM " + tbl + " ORDER BY name",
			exists: "SELECT EXISTS (SELECT 1 FROM " + tbl + " WHERE id = ?)",
			insert: "INSERT INTO " + tbl + " (id, name) VALUES (?, ?)",
			rename: "UPDATE " + tbl + " SET name = ? WHERE id = ?",
			delete: "DELETE FROM " + tbl + " WHERE id = ?",
			inUse: "SELECT COUNT(*) FROM Items WHERE " + col +
				" = ? AND COALESCE(is_deleted, 0) = 0",
			release: "UPDATE Items SET " + col + " = NULL WHERE " + col + " = ?",
		}
	}
	return res
}()

func queriesFor(tx schema.Taxonomy) (lookupSQL, error) {
	qs, ok := lookupQueries[tx]
	if !ok {
		return qs, UnknownTaxonomyError(tx)
	}
	return qs, nil
}

func lookupName(name string) (string, error) {
	name = cleanText(name)
	if name == "" {
		return "", ValidationError("name", "name cannot be empty")
	}
	return name, nil
}

// LookupEntries returns all entries of a taxonomy ordered by name.
func (s *store) LookupEntries(
	ctx context.Context,
	tx schema.Taxonomy,
) ([]schema.LookupEntry, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}
	qs, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, qs.list)
	if err != nil {
		return nil, QueryError("list "+tx.String(), err)
	}
	defer rows.Close()

	var res []schema.LookupEntry
	for rows.Next() {
		var e schema.LookupEntry
		if err = rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, QueryError("list "+tx.String(), err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("list "+tx.String(), err)
	}
	return res, nil
}

// AddLookupEntry creates a new taxonomy entry.
func (s *store) AddLookupEntry(
	ctx context.Context,
	tx schema.Taxonomy,
	name string,
) (string, error) {
	sqlDB, err := s.db()
	if err != nil {
		return "", err
	}
	qs, err := queriesFor(tx)
	if err != nil {
		return "", err
	}
	if name, err = lookupName(name); err != nil {
		return "", err
	}

	id := s.newID()
	_, err = sqlDB.ExecContext(ctx, qs.insert, id, name)
	if isUniqueViolation(err) {
		return "", LookupDuplicateError(tx, name, err)
	}
	if err != nil {
		return "", WriteError("add "+tx.String(), err)
	}

	slog.Info("Added lookup entry", "taxonomy", tx.String(), "id", id, "name", name)
	return id, nil
}

// RenameLookupEntry changes the name of a taxonomy entry.
func (s *store) RenameLookupEntry(
	ctx context.Context,
	tx schema.Taxonomy,
	id, name string,
) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}
	qs, err := queriesFor(tx)
	if err != nil {
		return err
	}
	if name, err = lookupName(name); err != nil {
		return err
	}

	res, err := sqlDB.ExecContext(ctx, qs.rename, name, id)
	if isUniqueViolation(err) {
		return LookupDuplicateError(tx, name, err)
	}
	if err != nil {
		return WriteError("rename "+tx.String(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return WriteError("rename "+tx.String(), err)
	}
	if n == 0 {
		return LookupNotFoundError(tx, id)
	}
	return nil
}

// DeleteLookupEntry removes a taxonomy entry. It is refused while items
// that are not deleted refer to the entry, Removed items included,
// because they keep the history of the collection. References from
// deleted items are cleared in the same transaction.
func (s *store) DeleteLookupEntry(
	ctx context.Context,
	tx schema.Taxonomy,
	id string,
) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}
	qs, err := queriesFor(tx)
	if err != nil {
		return err
	}

	dbTx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return WriteError("delete "+tx.String(), err)
	}
	defer func() { _ = dbTx.Rollback() }()

	var exists bool
	if err = dbTx.QueryRowContext(ctx, qs.exists, id).Scan(&exists); err != nil {
		return QueryError("delete "+tx.String(), err)
	}
	if !exists {
		return LookupNotFoundError(tx, id)
	}

	var count int
	if err = dbTx.QueryRowContext(ctx, qs.inUse, id).Scan(&count); err != nil {
		return QueryError("delete "+tx.String(), err)
	}
	if count > 0 {
		return LookupInUseError(tx, id, count)
	}

	if _, err = dbTx.ExecContext(ctx, qs.release, id); err != nil {
		return WriteError("delete "+tx.String(), err)
	}
	if _, err = dbTx.ExecContext(ctx, qs.delete, id); err != nil {
		return WriteError("delete "+tx.String(), err)
	}
	if err = dbTx.Commit(); err != nil {
		return WriteError("delete "+tx.String(), err)
	}

	slog.Info("Deleted lookup entry", "taxonomy", tx.String(), "id", id)
	return nil
}
