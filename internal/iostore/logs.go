package iostore

import (
	"context"
	"log/slog"

	"github.com/gnames/retroshelf/pkg/schema"
)

// AddLog appends a maintenance log dated today.
func (s *store) AddLog(
	ctx context.Context,
	itemID, description string,
) (string, error) {
	sqlDB, err := s.db()
	if err != nil {
		return "", err
	}

	description = cleanText(description)
	if description == "" {
		return "", ValidationError("description", "log description cannot be empty")
	}

	exists, err := itemExists(ctx, sqlDB, itemID)
	if err != nil {
		return "", QueryError("add log", err)
	}
	if !exists {
		return "", ItemNotFoundError(itemID)
	}

	id := s.newID()
	q := `INSERT INTO MaintenanceLogs (id, item_id, log_date, description)
		VALUES (?, ?, ?, ?)`
	if _, err = sqlDB.ExecContext(ctx, q, id, itemID, s.today(), description); err != nil {
		return "", WriteError("add log", err)
	}

	slog.Info("Added maintenance log", "item", itemID, "id", id)
	return id, nil
}

// DeleteLog removes a log row. Unknown IDs are ignored.
func (s *store) DeleteLog(ctx context.Context, logID string) error {
	sqlDB, err := s.db()
	if err != nil {
		return err
	}
	_, err = sqlDB.ExecContext(ctx, "DELETE FROM MaintenanceLogs WHERE id = ?", logID)
	if err != nil {
		return WriteError("delete log", err)
	}
	return nil
}

// Logs returns logs of an item, the most recently added first.
func (s *store) Logs(
	ctx context.Context,
	itemID string,
) ([]schema.MaintenanceLog, error) {
	sqlDB, err := s.db()
	if err != nil {
		return nil, err
	}

	q := `
		SELECT id, COALESCE(item_id, ''), COALESCE(log_date, ''),
			COALESCE(description, '')
		FROM MaintenanceLogs
		WHERE item_id = ?
		ORDER BY rowid DESC
	`
	rows, err := sqlDB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, QueryError("list logs", err)
	}
	defer rows.Close()

	var res []schema.MaintenanceLog
	for rows.Next() {
		var l schema.MaintenanceLog
		if err = rows.Scan(&l.ID, &l.ItemID, &l.Date, &l.Description); err != nil {
			return nil, QueryError("list logs", err)
		}
		res = append(res, l)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("list logs", err)
	}
	return res, nil
}
