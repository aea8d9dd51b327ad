// Package iostore implements shelf.Store on top of the SQLite
// database. This is an impure I/O package: every operation runs SQL
// through the handle owned by a db.Operator.
package iostore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gnames/gnlib"
	"github.com/gnames/retroshelf/pkg/db"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"github.com/google/uuid"
)

// searchLimit caps the number of search results.
const searchLimit = 50

// visible selects items shown in the collection: not deleted and
// Active (NULL status comes from databases older than the column).
const visible = `COALESCE(i.is_deleted, 0) = 0
	AND (i.status IS NULL OR i.status = 'Active')`

// store implements the shelf.Store interface.
type store struct {
	operator db.Operator
	now      func() time.Time
	newID    func() string
}

// NewStore creates a new Store. The operator must be opened and the
// schema migrated before the store is used.
func NewStore(op db.Operator) shelf.Store {
	return &store{
		operator: op,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *store) db() (*sql.DB, error) {
	sqlDB := s.operator.DB()
	if sqlDB == nil {
		return nil, NotConnectedError()
	}
	return sqlDB, nil
}

func (s *store) today() string {
	return s.now().Format(schema.DateFormat)
}

func (s *store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// cleanText trims user input and replaces broken UTF-8.
func cleanText(s string) string {
	return gnlib.FixUtf8(strings.TrimSpace(s))
}

// nullString stores empty strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	schema.DateFormat,
}

// parseTime reads timestamps written by this and older releases.
// Unknown formats give zero time.
func parseTime(s string) time.Time {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// escapeLike makes % and _ match literally with ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func itemExists(ctx context.Context, q queryer, id string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM Items WHERE id = ?)", id,
	).Scan(&exists)
	return exists, err
}
