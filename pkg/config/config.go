// Package config provides configuration management for retroshelf.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Storage: db_path, image_dir
//   - Report: currency, format
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (set by CLI only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use RETROSHELF_ prefix with underscores for nesting:
//
//	RETROSHELF_STORAGE_DB_PATH=/data/collection.db
//	RETROSHELF_STORAGE_IMAGE_DIR=/data/images
//	RETROSHELF_REPORT_CURRENCY=R$
//	RETROSHELF_LOG_LEVEL=info
//	RETROSHELF_JOBS_NUMBER=4
package config

import (
	"runtime"
)

// Config represents the complete retroshelf configuration.
type Config struct {
	// Storage tells where the collection database and photos live.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Report contains settings for totals and sale catalog exports.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used when image
	// files are checked on disk.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StorageConfig contains locations of the SQLite file and the image
// directory.
type StorageConfig struct {
	// DBPath is the SQLite database file. Empty means
	// ~/.local/share/retroshelf/collection.db.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// ImageDir keeps photos copied for items. Empty means
	// ~/.local/share/retroshelf/images.
	ImageDir string `mapstructure:"image_dir" yaml:"image_dir"`
}

// ReportConfig contains settings of collection reports.
type ReportConfig struct {
	// Currency is the symbol printed in front of money values.
	Currency string `mapstructure:"currency" yaml:"currency"`

	// Format is the default format of exported sale catalogs.
	// Valid values: "text", "csv", "tsv", "json".
	Format string `mapstructure:"format" yaml:"format"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Report: ReportConfig{
			Currency: "R$",
			Format:   "text",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// DBPath returns the configured database file, falling back to the
// default location under HomeDir.
func (c *Config) DBPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	if c.HomeDir == "" {
		return ""
	}
	return DBFilePath(c.HomeDir)
}

// ImageDir returns the configured image directory, falling back to the
// default location under HomeDir.
func (c *Config) ImageDir() string {
	if c.Storage.ImageDir != "" {
		return c.Storage.ImageDir
	}
	if c.HomeDir == "" {
		return ""
	}
	return ImageDirPath(c.HomeDir)
}
