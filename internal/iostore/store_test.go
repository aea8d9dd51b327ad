package iostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/iodb"
	"github.com/gnames/retroshelf/internal/ioschema"
	"github.com/gnames/retroshelf/pkg/db"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

// newTestStore returns a store over a migrated in-memory database.
func newTestStore(t *testing.T) (*store, db.Operator) {
	t.Helper()
	ctx := context.Background()

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, iodb.MemoryPath))
	t.Cleanup(func() { _ = op.Close() })
	require.NoError(t, ioschema.NewManager(op).Migrate(ctx))

	s := NewStore(op).(*store)
	s.now = func() time.Time { return testNow }
	return s, op
}

func requireCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, code, gnErr.Code)
}

func addLookup(t *testing.T, s *store, tx schema.Taxonomy, name string) string {
	t.Helper()
	id, err := s.AddLookupEntry(context.Background(), tx, name)
	require.NoError(t, err)
	return id
}

func addItem(t *testing.T, s *store, f schema.ItemFields) string {
	t.Helper()
	id, err := s.CreateItem(context.Background(), f)
	require.NoError(t, err)
	return id
}

func TestStore_ImplementsInterface(t *testing.T) {
	var _ shelf.Store = NewStore(iodb.NewSQLiteOperator())
}

func TestStore_NotConnected(t *testing.T) {
	s := NewStore(iodb.NewSQLiteOperator())
	_, err := s.Stats(context.Background())
	requireCode(t, err, errcode.DBNotConnectedError)
}

func TestCreateItem_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	snes := addLookup(t, s, schema.System, "SNES")
	cart := addLookup(t, s, schema.Category, "Cartridge")
	ntsc := addLookup(t, s, schema.Region, "NTSC-U")
	orig := addLookup(t, s, schema.Authenticity, "Original")

	f := schema.ItemFields{
		Name:            "Chrono Trigger",
		SystemID:        snes,
		CategoryID:      cart,
		RegionID:        ntsc,
		AuthenticityID:  orig,
		HasBox:          true,
		HasManual:       false,
		IsForSale:       true,
		ConditionNotes:  "Label slightly worn",
		StorageLocation: "Shelf B2",
		PurchasePrice:   decimal.RequireFromString("50.25"),
		MarketValue:     decimal.RequireFromString("120"),
		SellingPrice:    decimal.RequireFromString("149.99"),
	}
	id := addItem(t, s, f)
	assert.NotEmpty(t, id)

	item, err := s.Item(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, item.ID)
	assert.Equal(t, schema.StatusActive, item.Status)
	assert.False(t, item.IsDeleted)
	assert.Empty(t, item.ExitDate)
	assert.Empty(t, item.ExitReason)
	assert.True(t, item.LastModified.Equal(testNow))

	assert.Equal(t, f.Name, item.Name)
	assert.Equal(t, f.SystemID, item.SystemID)
	assert.Equal(t, f.CategoryID, item.CategoryID)
	assert.Equal(t, f.RegionID, item.RegionID)
	assert.Equal(t, f.AuthenticityID, item.AuthenticityID)
	assert.Equal(t, f.HasBox, item.HasBox)
	assert.Equal(t, f.HasManual, item.HasManual)
	assert.Equal(t, f.IsForSale, item.IsForSale)
	assert.Equal(t, f.ConditionNotes, item.ConditionNotes)
	assert.Equal(t, f.StorageLocation, item.StorageLocation)
	assert.True(t, f.PurchasePrice.Equal(item.PurchasePrice), item.PurchasePrice)
	assert.True(t, f.MarketValue.Equal(item.MarketValue), item.MarketValue)
	assert.True(t, f.SellingPrice.Equal(item.SellingPrice), item.SellingPrice)
}

func TestCreateItem_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	tests := []struct {
		msg  string
		f    schema.ItemFields
		code gn.ErrorCode
	}{
		{"empty name", schema.ItemFields{Name: "  "}, errcode.StoreValidationError},
		{
			"negative price",
			schema.ItemFields{Name: "Zelda", PurchasePrice: decimal.NewFromInt(-1)},
			errcode.StoreValidationError,
		},
		{
			"unknown system",
			schema.ItemFields{Name: "Zelda", SystemID: "no-such-system"},
			errcode.StoreLookupNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := s.CreateItem(context.Background(), tt.f)
			requireCode(t, err, tt.code)
		})
	}

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Count, "nothing was inserted")
}

func TestItem_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Item(context.Background(), "missing")
	requireCode(t, err, errcode.StoreItemNotFoundError)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	id := addItem(t, s, schema.ItemFields{Name: "Mega Man X"})

	require.NoError(t, s.WriteOffItem(ctx, id, "Sold", ""))

	f := schema.ItemFields{
		Name:         " Mega Man X2 ",
		HasManual:    true,
		MarketValue:  decimal.NewFromInt(80),
		SellingPrice: decimal.NewFromInt(95),
	}
	require.NoError(t, s.UpdateItem(ctx, id, f))

	item, err := s.Item(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mega Man X2", item.Name)
	assert.True(t, item.HasManual)
	assert.True(t, decimal.NewFromInt(80).Equal(item.MarketValue))
	assert.Equal(t, schema.StatusRemoved, item.Status,
		"update does not touch lifecycle fields")
	assert.Equal(t, "Sold", item.ExitReason)

	err = s.UpdateItem(ctx, "missing", f)
	requireCode(t, err, errcode.StoreItemNotFoundError)
}

// TestUpdateItem_DanglingReference covers items of old databases whose
// system entry was deleted: other fields stay editable, a new unknown
// system is still refused.
func TestUpdateItem_DanglingReference(t *testing.T) {
	ctx := context.Background()
	s, op := newTestStore(t)
	snes := addLookup(t, s, schema.System, "SNES")
	game := addLookup(t, s, schema.Category, "Game")
	id := addItem(t, s, schema.ItemFields{
		Name: "Chrono Trigger", SystemID: snes, CategoryID: game,
	})

	_, err := op.DB().ExecContext(ctx,
		`UPDATE Items SET system_id = 'gone' WHERE id = ?`, id)
	require.NoError(t, err)

	item, err := s.Item(ctx, id)
	require.NoError(t, err)
	f := item.ItemFields
	f.StorageLocation = "Shelf B"
	require.NoError(t, s.UpdateItem(ctx, id, f))

	item, err = s.Item(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shelf B", item.StorageLocation)
	assert.Equal(t, "gone", item.SystemID)

	f.CategoryID = "also-gone"
	err = s.UpdateItem(ctx, id, f)
	requireCode(t, err, errcode.StoreLookupNotFoundError)

	f.CategoryID = game
	f.SystemID = snes
	require.NoError(t, s.UpdateItem(ctx, id, f))
}

func TestWriteOffItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	snes := addLookup(t, s, schema.System, "SNES")
	id := addItem(t, s, schema.ItemFields{
		Name: "Chrono Trigger", SystemID: snes, IsForSale: true,
	})

	err := s.WriteOffItem(ctx, id, " ", "details")
	requireCode(t, err, errcode.StoreValidationError)

	require.NoError(t, s.WriteOffItem(ctx, id, "Sold", "eBay auction"))
	item, err := s.Item(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusRemoved, item.Status)
	assert.Equal(t, "2025-03-14", item.ExitDate)
	assert.Equal(t, "Sold: eBay auction", item.ExitReason)
	assert.False(t, item.IsVisible())

	// a second write-off overwrites date and reason
	s.now = func() time.Time { return testNow.AddDate(0, 0, 2) }
	require.NoError(t, s.WriteOffItem(ctx, id, "Donated", ""))
	item, err = s.Item(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusRemoved, item.Status)
	assert.Equal(t, "2025-03-16", item.ExitDate)
	assert.Equal(t, "Donated", item.ExitReason)

	assertHidden(t, s, snes, "", "Chrono")

	err = s.WriteOffItem(ctx, "missing", "Sold", "")
	requireCode(t, err, errcode.StoreItemNotFoundError)
}

func TestSoftDeleteItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	snes := addLookup(t, s, schema.System, "SNES")
	cart := addLookup(t, s, schema.Category, "Cartridge")
	id := addItem(t, s, schema.ItemFields{
		Name: "Super Metroid", SystemID: snes, CategoryID: cart,
		IsForSale: true, PurchasePrice: decimal.NewFromInt(30),
	})

	require.NoError(t, s.SoftDeleteItem(ctx, id))
	assertHidden(t, s, snes, cart, "Metroid")

	item, err := s.Item(ctx, id)
	require.NoError(t, err)
	assert.True(t, item.IsDeleted)

	err = s.SoftDeleteItem(ctx, "missing")
	requireCode(t, err, errcode.StoreItemNotFoundError)
}

// assertHidden checks that no listing or aggregate shows any item.
func assertHidden(t *testing.T, s *store, systemID, categoryID, query string) {
	t.Helper()
	ctx := context.Background()

	systems, err := s.SystemsWithCount(ctx)
	require.NoError(t, err)
	assert.Empty(t, systems)

	found, err := s.SearchItems(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, found)

	if categoryID != "" {
		items, err := s.ItemsByTaxonomy(ctx, systemID, categoryID)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	catalog, err := s.SaleCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Count)
	assert.False(t, st.PurchaseTotal.Valid)
	assert.False(t, st.MarketTotal.Valid)
}

func TestStats_Empty(t *testing.T) {
	s, _ := newTestStore(t)
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Count)
	assert.False(t, st.PurchaseTotal.Valid)
	assert.False(t, st.MarketTotal.Valid)
}

func TestChronoTriggerScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s1 := addLookup(t, s, schema.System, "SNES")

	id := addItem(t, s, schema.ItemFields{
		Name:          "Chrono Trigger",
		SystemID:      s1,
		PurchasePrice: decimal.NewFromFloat(50.0),
		MarketValue:   decimal.NewFromFloat(120.0),
	})

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Count)
	require.True(t, st.PurchaseTotal.Valid)
	require.True(t, st.MarketTotal.Valid)
	assert.True(t, decimal.NewFromInt(50).Equal(st.PurchaseTotal.Decimal))
	assert.True(t, decimal.NewFromInt(120).Equal(st.MarketTotal.Decimal))

	found, err := s.SearchItems(ctx, "chrono")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)
	assert.Equal(t, "SNES", found[0].SystemName)
	assert.Equal(t, schema.StatusActive, found[0].Status)

	require.NoError(t, s.WriteOffItem(ctx, id, "Sold", ""))

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Count)
	assert.False(t, st.PurchaseTotal.Valid)
	assert.False(t, st.MarketTotal.Valid)
}

func TestStats_LegacyNullStatus(t *testing.T) {
	ctx := context.Background()
	s, op := newTestStore(t)
	id := addItem(t, s, schema.ItemFields{
		Name: "Sonic", PurchasePrice: decimal.NewFromInt(10),
	})
	_, err := op.DB().ExecContext(ctx,
		"UPDATE Items SET status = NULL WHERE id = ?", id)
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Count, "NULL status counts as Active")

	item, err := s.Item(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusActive, item.Status)
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	for _, name := range []string{"Zelda", "100% Orange Juice", "Street_Fighter", "Streets of Rage"} {
		addItem(t, s, schema.ItemFields{Name: name})
	}

	tests := []struct {
		msg   string
		query string
		want  []string
	}{
		{"case insensitive", "ZELDA", []string{"Zelda"}},
		{"percent is literal", "%", []string{"100% Orange Juice"}},
		{"underscore is literal", "t_F", []string{"Street_Fighter"}},
		{"ordered by name", "street", []string{"Street_Fighter", "Streets of Rage"}},
		{"no match", "mario", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := s.SearchItems(ctx, tt.query)
			require.NoError(t, err)
			var names []string
			for _, r := range res {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchItems_Limit(t *testing.T) {
	s, _ := newTestStore(t)
	for i := range 60 {
		addItem(t, s, schema.ItemFields{Name: fmt.Sprintf("Game %02d", i)})
	}
	res, err := s.SearchItems(context.Background(), "game")
	require.NoError(t, err)
	assert.Len(t, res, searchLimit)
	assert.Equal(t, "Game 00", res[0].Name)
}

func TestItemsByTaxonomy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	snes := addLookup(t, s, schema.System, "SNES")
	md := addLookup(t, s, schema.System, "Mega Drive")
	cart := addLookup(t, s, schema.Category, "Cartridge")
	acc := addLookup(t, s, schema.Category, "Accessory")

	addItem(t, s, schema.ItemFields{Name: "Zelda", SystemID: snes, CategoryID: cart})
	addItem(t, s, schema.ItemFields{Name: "F-Zero", SystemID: snes, CategoryID: cart})
	addItem(t, s, schema.ItemFields{Name: "Multitap", SystemID: snes, CategoryID: acc})
	addItem(t, s, schema.ItemFields{Name: "Sonic", SystemID: md, CategoryID: cart})

	res, err := s.ItemsByTaxonomy(ctx, snes, cart)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "F-Zero", res[0].Name)
	assert.Equal(t, "Zelda", res[1].Name)
	assert.Equal(t, "SNES", res[0].SystemName)

	_, err = s.ItemsByTaxonomy(ctx, snes, "")
	requireCode(t, err, errcode.StoreValidationError)
	_, err = s.ItemsByTaxonomy(ctx, "", cart)
	requireCode(t, err, errcode.StoreValidationError)

	systems, err := s.SystemsWithCount(ctx)
	require.NoError(t, err)
	require.Len(t, systems, 2)
	assert.Equal(t, schema.TaxonomyCount{ID: md, Name: "Mega Drive", Count: 1}, systems[0])
	assert.Equal(t, schema.TaxonomyCount{ID: snes, Name: "SNES", Count: 3}, systems[1])

	cats, err := s.CategoriesInSystem(ctx, snes)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Accessory", cats[0].Name)
	assert.Equal(t, 1, cats[0].Count)
	assert.Equal(t, "Cartridge", cats[1].Name)
	assert.Equal(t, 2, cats[1].Count)

	_, err = s.CategoriesInSystem(ctx, "")
	requireCode(t, err, errcode.StoreValidationError)
}

func TestSaleCatalog(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	snes := addLookup(t, s, schema.System, "SNES")
	md := addLookup(t, s, schema.System, "Mega Drive")
	cart := addLookup(t, s, schema.Category, "Cartridge")

	addItem(t, s, schema.ItemFields{
		Name: "Zelda", SystemID: snes, CategoryID: cart, IsForSale: true,
		SellingPrice: decimal.RequireFromString("199.90"),
	})
	addItem(t, s, schema.ItemFields{
		Name: "Earthbound", SystemID: snes, IsForSale: true,
		ConditionNotes: "CIB", SellingPrice: decimal.NewFromInt(900),
	})
	addItem(t, s, schema.ItemFields{
		Name: "Sonic", SystemID: md, CategoryID: cart, IsForSale: true,
		SellingPrice: decimal.NewFromInt(40),
	})
	addItem(t, s, schema.ItemFields{Name: "Kept", SystemID: md, IsForSale: false})

	res, err := s.SaleCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "Sonic", res[0].Name)
	assert.Equal(t, "Mega Drive", res[0].SystemName)
	assert.Equal(t, "Cartridge", res[0].CategoryName)
	assert.Equal(t, "Earthbound", res[1].Name)
	assert.Equal(t, "", res[1].CategoryName)
	assert.Equal(t, "CIB", res[1].ConditionNotes)
	assert.Equal(t, "Zelda", res[2].Name)
	assert.True(t, decimal.RequireFromString("199.9").Equal(res[2].SellingPrice))
}
