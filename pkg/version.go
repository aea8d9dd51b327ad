// Package retroshelf keeps build metadata shared by the CLI and the
// library packages.
package retroshelf

var (
	// Version of retroshelf, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
