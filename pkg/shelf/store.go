package shelf

import (
	"context"

	"github.com/gnames/retroshelf/pkg/schema"
)

// Reader contains read operations. Listings include only visible
// items (not deleted, status Active or NULL).
type Reader interface {
	// SystemsWithCount returns systems that have visible items, with
	// the number of such items, ordered by name.
	SystemsWithCount(ctx context.Context) ([]schema.TaxonomyCount, error)

	// CategoriesInSystem returns categories of visible items that
	// belong to the system, with counts, ordered by name.
	CategoriesInSystem(
		ctx context.Context,
		systemID string,
	) ([]schema.TaxonomyCount, error)

	// SearchItems finds up to 50 items which names contain the query,
	// ignoring case.
	SearchItems(ctx context.Context, query string) ([]schema.ItemSummary, error)

	// ItemsByTaxonomy lists items of a system and a category. Both IDs
	// are required.
	ItemsByTaxonomy(
		ctx context.Context,
		systemID, categoryID string,
	) ([]schema.ItemSummary, error)

	// SaleCatalog lists items marked for sale, ordered by system name
	// and item name.
	SaleCatalog(ctx context.Context) ([]schema.SaleEntry, error)

	// Item returns an item by ID regardless of its visibility.
	Item(ctx context.Context, id string) (schema.Item, error)

	// Stats returns the count and money totals of visible items.
	Stats(ctx context.Context) (schema.Stats, error)

	// LookupEntries returns all entries of a taxonomy ordered by name.
	LookupEntries(
		ctx context.Context,
		tx schema.Taxonomy,
	) ([]schema.LookupEntry, error)

	// Image returns a photo by its ID.
	Image(ctx context.Context, imageID string) (schema.ItemImage, error)

	// Images returns photos of an item.
	Images(ctx context.Context, itemID string) ([]schema.ItemImage, error)

	// AllImages returns photos of all items, deleted ones included.
	AllImages(ctx context.Context) ([]schema.ItemImage, error)

	// Logs returns maintenance logs of an item, most recent first.
	Logs(ctx context.Context, itemID string) ([]schema.MaintenanceLog, error)
}

// Writer contains write operations. Every failure, validation or
// storage, is returned as an error.
type Writer interface {
	// CreateItem inserts a new Active item and returns its ID.
	CreateItem(ctx context.Context, f schema.ItemFields) (string, error)

	// UpdateItem replaces all mutable fields of an item. Lifecycle
	// fields are not touched.
	UpdateItem(ctx context.Context, id string, f schema.ItemFields) error

	// WriteOffItem marks an item as Removed with today's date and
	// the reason. Repeating a write-off overwrites date and reason.
	WriteOffItem(ctx context.Context, id, reason, details string) error

	// SoftDeleteItem hides an item forever. Nothing is removed.
	SoftDeleteItem(ctx context.Context, id string) error

	// AddImage attaches a file, already copied into the image directory,
	// to an item. It fails when the item has MaxImagesPerItem images.
	AddImage(ctx context.Context, itemID, filename string) (string, error)

	// DeleteImage removes an image row. Unknown IDs are ignored.
	DeleteImage(ctx context.Context, imageID string) error

	// AddLog appends a maintenance log dated today.
	AddLog(ctx context.Context, itemID, description string) (string, error)

	// DeleteLog removes a log row. Unknown IDs are ignored.
	DeleteLog(ctx context.Context, logID string) error

	// AddLookupEntry creates a new taxonomy entry and returns its ID.
	AddLookupEntry(
		ctx context.Context,
		tx schema.Taxonomy,
		name string,
	) (string, error)

	// RenameLookupEntry changes the name of a taxonomy entry.
	RenameLookupEntry(ctx context.Context, tx schema.Taxonomy, id, name string) error

	// DeleteLookupEntry removes a taxonomy entry. Entries used by items
	// that are not deleted cannot be removed.
	DeleteLookupEntry(ctx context.Context, tx schema.Taxonomy, id string) error
}

// Store is the repository of the collection.
type Store interface {
	Reader
	Writer
}
