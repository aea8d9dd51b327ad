package shelf

import (
	"context"

	"github.com/gnames/retroshelf/pkg/schema"
)

// VerifyResult is the outcome of comparing image rows with the files
// of the image directory.
type VerifyResult struct {
	// Checked is the number of image rows checked.
	Checked int

	// Missing are rows without a file.
	Missing []schema.ItemImage

	// Orphans are files that no row refers to.
	Orphans []string
}

// Verifier checks consistency of the image directory.
type Verifier interface {
	Verify(ctx context.Context) (VerifyResult, error)
}
