package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/iodb"
	"github.com/gnames/retroshelf/internal/ioschema"
	"github.com/gnames/retroshelf/internal/iostore"
	"github.com/gnames/retroshelf/pkg/db"
	"github.com/gnames/retroshelf/pkg/shelf"
)

// session owns the database handle of one command.
type session struct {
	op    db.Operator
	store shelf.Store
}

// openSession opens the configured database, brings its schema up
// to date and creates the store.
func openSession(ctx context.Context) (*session, error) {
	op := iodb.NewSQLiteOperator()
	if err := op.Open(ctx, cfg.DBPath()); err != nil {
		return nil, err
	}

	if err := ioschema.NewManager(op).Migrate(ctx); err != nil {
		_ = op.Close()
		return nil, err
	}

	return &session{op: op, store: iostore.NewStore(op)}, nil
}

func (s *session) Close() {
	_ = s.op.Close()
}

// withSession opens a session, runs fn and prints its error.
func withSession(fn func(context.Context, *session) error) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	if err = fn(ctx, s); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
