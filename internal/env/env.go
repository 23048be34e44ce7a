// Package env resolves user-level directories.
package env

import (
	"os"
	"path/filepath"
)

// UserBinDir returns the user's personal executable directory.
func UserBinDir() (string, error) {
	root, err := UserLocalRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "bin"), nil
}

// UserLocalRoot returns the per-user install root, the parent of the
// personal executable directory.
func UserLocalRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local"), nil
}

// ConfigDir returns the directory holding tap's global configuration.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tap"), nil
}
