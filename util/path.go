package util

import (
	"os"
	"path/filepath"
)

// IsDir returns true if path is exist and is a directory.
func IsDir(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || !fi.IsDir() {
		return false
	}
	return true
}

// ResolvePath returns name unchanged if it is absolute, otherwise joined
// to base.
func ResolvePath(base, name string) string {
	if name == "" || filepath.IsAbs(name) || base == "" {
		return name
	}
	return filepath.Join(base, name)
}
