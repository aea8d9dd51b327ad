// Package iofs keeps file system chores of retroshelf: application
// directories, the default config file and copies of item photos.
package iofs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/retroshelf/pkg/config"
	"github.com/gnames/retroshelf/pkg/templates"
	"github.com/google/uuid"
)

// EnsureDirs creates configuration, data and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureStorageDirs creates the image directory and the directory that
// holds the database file.
func EnsureStorageDirs(cfg *config.Config) error {
	dirs := []string{
		filepath.Dir(cfg.DBPath()),
		cfg.ImageDir(),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded config.yaml if the user does not
// have one yet.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// CopyImage copies src into imageDir under a random name that keeps the
// original extension. It returns the new file name (without directory).
func CopyImage(imageDir, src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", ReadFileError(src, err)
	}
	defer in.Close()

	ext := strings.ToLower(filepath.Ext(src))
	name := uuid.NewString() + ext
	dst := filepath.Join(imageDir, name)

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", CopyFileError(dst, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", CopyFileError(dst, err)
	}

	if err = out.Close(); err != nil {
		os.Remove(dst)
		return "", CopyFileError(dst, err)
	}

	return name, nil
}

// RemoveImage deletes a photo from imageDir. A missing file is not an
// error.
func RemoveImage(imageDir, name string) error {
	path := filepath.Join(imageDir, filepath.Base(name))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return WriteFileError(path, err)
	}
	return nil
}
