package file

import (
	"path/filepath"
	"strings"
)

// InsertSuffix inserts a suffix between a filename's stem and extension.
// e.g. InsertSuffix("ch01_seg01_of_02.md", "_ro") -> "ch01_seg01_of_02_ro.md"
func InsertSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
