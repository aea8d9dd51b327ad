// Package schema provides the data models of a retro game collection.
// Models mirror the tables of the SQLite database, so databases created
// by earlier releases keep working.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxImagesPerItem limits how many photos one Item can hold.
const MaxImagesPerItem = 5

// DateFormat is the layout of exit and maintenance dates.
const DateFormat = "2006-01-02"

// Status is the lifecycle state of an Item.
type Status string

const (
	// StatusActive marks an item that is part of the collection.
	// Items created before the status column existed have NULL status,
	// which reads as Active.
	StatusActive Status = "Active"

	// StatusRemoved marks an item that was written off (sold, traded,
	// donated, discarded). Removed is terminal.
	StatusRemoved Status = "Removed"
)

// WriteOffReasons are the reasons offered by the CLI when an item
// leaves the collection. Any non-empty reason is accepted by the store.
var WriteOffReasons = []string{"Sold", "Traded", "Donated", "Discarded", "Other"}

// LookupEntry is one value of a Taxonomy, for example a "SNES" system
// or a "Cartridge" category.
type LookupEntry struct {
	// ID is an opaque unique identifier generated by the client.
	ID string `json:"id" yaml:"id"`

	// Name is unique within its taxonomy.
	Name string `json:"name" yaml:"name"`
}

// ItemFields are the mutable, non-lifecycle attributes of an Item.
// Empty taxonomy IDs are stored as NULL.
type ItemFields struct {
	Name            string
	SystemID        string
	CategoryID      string
	RegionID        string
	AuthenticityID  string
	HasBox          bool
	HasManual       bool
	IsForSale       bool
	ConditionNotes  string
	StorageLocation string
	PurchasePrice   decimal.Decimal
	MarketValue     decimal.Decimal
	SellingPrice    decimal.Decimal
}

// Item is the central record of the collection.
type Item struct {
	ItemFields

	// ID is a random UUID assigned on creation.
	ID string

	// Status is Active or Removed.
	Status Status

	// IsDeleted is a soft tombstone. Deleted items never show up in
	// listings or reports, but the row and its children stay.
	IsDeleted bool

	// ExitDate is the date of the write-off (DateFormat).
	ExitDate string

	// ExitReason is "reason: details" of the write-off.
	ExitReason string

	// ImageFilename is the single photo used by old releases. Migrations
	// copy it into ItemImages.
	ImageFilename string

	// LastModified is updated by every write to the item row.
	LastModified time.Time
}

// IsVisible reports if the item is shown in the collection views.
func (it Item) IsVisible() bool {
	return !it.IsDeleted && it.Status != StatusRemoved
}

// ItemImage is a photo of an Item. The file lives in the image
// directory, the row only keeps its name.
type ItemImage struct {
	ID       string `json:"id"`
	ItemID   string `json:"itemId"`
	Filename string `json:"filename"`
}

// MaintenanceLog is an append-only note about cleaning, repairs and
// similar work done on an Item.
type MaintenanceLog struct {
	ID          string `json:"id"`
	ItemID      string `json:"itemId"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ItemSummary is a row of search and browse listings.
type ItemSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SystemName string `json:"system"`
	Status     Status `json:"status"`
}

// TaxonomyCount is a lookup entry with the number of visible items
// that refer to it.
type TaxonomyCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SaleEntry is a row of the sale catalog.
type SaleEntry struct {
	ItemID         string          `json:"id"`
	Name           string          `json:"name"`
	SystemName     string          `json:"system"`
	CategoryName   string          `json:"category"`
	ConditionNotes string          `json:"notes"`
	SellingPrice   decimal.Decimal `json:"price"`
}

// Stats are aggregates over visible items. Totals are invalid (NULL)
// when there are no visible items.
type Stats struct {
	Count         int
	PurchaseTotal decimal.NullDecimal
	MarketTotal   decimal.NullDecimal
}
