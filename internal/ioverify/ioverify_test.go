package ioverify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/retroshelf/internal/iodb"
	"github.com/gnames/retroshelf/internal/ioschema"
	"github.com/gnames/retroshelf/internal/iostore"
	"github.com/gnames/retroshelf/internal/ioverify"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	ctx := context.Background()
	imageDir := t.TempDir()

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, iodb.MemoryPath))
	defer op.Close()
	require.NoError(t, ioschema.NewManager(op).Migrate(ctx))
	st := iostore.NewStore(op)

	id, err := st.CreateItem(ctx, schema.ItemFields{Name: "Virtual Boy"})
	require.NoError(t, err)

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		_, err = st.AddImage(ctx, id, name)
		require.NoError(t, err)
	}
	for _, name := range []string{"a.jpg", "c.jpg", "stray.png"} {
		err = os.WriteFile(filepath.Join(imageDir, name), []byte("img"), 0644)
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(imageDir, "subdir"), 0755))

	res, err := ioverify.New(st, imageDir, 2, false).Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Checked)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, "b.jpg", res.Missing[0].Filename)
	assert.Equal(t, id, res.Missing[0].ItemID)
	assert.Equal(t, []string{"stray.png"}, res.Orphans)
}

func TestVerify_NoImages(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, iodb.MemoryPath))
	defer op.Close()
	require.NoError(t, ioschema.NewManager(op).Migrate(ctx))

	dir := filepath.Join(t.TempDir(), "missing")
	res, err := ioverify.New(iostore.NewStore(op), dir, 0, false).Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Checked)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Orphans)
}
