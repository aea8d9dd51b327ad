package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "retroshelf"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/retroshelf by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory that keeps the database and images.
// Returns ~/.local/share/retroshelf by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/retroshelf/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/retroshelf/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DBFilePath returns the default location of the collection database.
func DBFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "collection.db")
}

// ImageDirPath returns the default location of copied item photos.
func ImageDirPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "images")
}
