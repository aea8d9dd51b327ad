package iostore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/gnames/retroshelf/pkg/schema"
)

// AddImage attaches an image file to an item. The count and the insert
// run in one transaction, so the limit holds.
func (s *store) AddImage(
	ctx context.Context,
	itemID, filename string,
) (string, error) {
	sqlDB, err := s.db()
	if err != nil {
		return "", err
	}

	filename = cleanText(filename)
	if filename == "" {
		return "", ValidationError("filename", "image file name cannot be empty")
	}
	if filepath.Base(filename) != filename ||
		filename == "." || filename == ".." {
		return "", ValidationError("filename",
			"image file name must not contain directories")
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", WriteError("add image", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := itemExists(ctx, tx, itemID)
	if err != nil {
		return "", QueryError("add image", err)
	}
	if !exists {
		return "", ItemNotFoundError(itemID)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ItemImages WHERE item_id = ?", itemID,
	).Scan(&count)
	if err != nil {
		return "", QueryError("add image", err)
	}
	if count >= schema.MaxImagesPerItem {
		return "", ImageLimitError(itemID, schema.MaxImagesPerItem)
	}

	id := s.newID()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO ItemImages (id, item_id, filename) VALUES (?, ?, ?)",
		id, itemID, filename,
	)
	if err != nil {
		return "", WriteError("add image", err)
	}
	if err = tx.Commit(); err != nil {
		return "", WriteError("add image", err)
	}

	slog.Info("Added image", "item", itemID, "file", filename)
	return id, nil
}

// DeleteImage removes an image row. Unknown IDs are ignored.
func (s *store) DeleteImage(ctx context.Context, imageID string) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}
	_, err = sqlDB.ExecContext(ctx, "DELETE FROM ItemImages WHERE id = ?", imageID)
	if err != nil {
		return WriteError("delete image", err)
	}
	return nil
}

// Image returns an image row by its ID.
func (s *store) Image(ctx context.Context, imageID string) (schema.ItemImage, error) {
	var res schema.ItemImage
	sqlDB, err := s.db()
	if err != nil {
		return res, err
	}

	q := `SELECT id, COALESCE(item_id, ''), COALESCE(filename, '')
		FROM ItemImages WHERE id = ?`
	err = sqlDB.QueryRowContext(ctx, q, imageID).Scan(
		&res.ID, &res.ItemID, &res.Filename,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ImageNotFoundError(imageID)
	}
	if err != nil {
		return res, QueryError("get image", err)
	}
	return res, nil
}

// Images returns images of an item in the order they were added.
func (s *store) Images(
	ctx context.Context,
	itemID string,
) ([]schema.ItemImage, error) {
	q := `SELECT id, COALESCE(item_id, ''), COALESCE(filename, '')
		FROM ItemImages WHERE item_id = ? ORDER BY rowid`
	return s.images(ctx, q, itemID)
}

// AllImages returns every image row.
func (s *store) AllImages(ctx context.Context) ([]schema.ItemImage, error) {
	q := `SELECT id, COALESCE(item_id, ''), COALESCE(filename, '')
		FROM ItemImages ORDER BY item_id, rowid`
	return s.images(ctx, q)
}

func (s *store) images(
	ctx context.Context,
	q string,
	args ...any,
) ([]schema.ItemImage, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError("list images", err)
	}
	defer rows.Close()

	var res []schema.ItemImage
	for rows.Next() {
		var img schema.ItemImage
		if err = rows.Scan(&img.ID, &img.ItemID, &img.Filename); err != nil {
			return nil, QueryError("list images", err)
		}
		res = append(res, img)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("list images", err)
	}
	return res, nil
}
