// Package parser picks a loader for a measurement source by its file
// extension and turns it into a patient × day matrix.
package parser

import (
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Options are shared by all loaders; each loader reads the fields it needs.
type Options struct {
	// Delimiter overrides the extension default for delimited text. 0 means default.
	Delimiter rune
	// SheetName selects a workbook sheet by name (case-insensitive).
	SheetName string
	// SheetIndex selects a workbook sheet by 1-based position when SheetName is empty.
	SheetIndex int
}

// Loader reads one kind of measurement source.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*mat.Dense, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// LoadFile selects a loader based on the file extension and loads the matrix.
// Unknown extensions are read as comma-delimited text.
func LoadFile(path string, opt Options) (*mat.Dense, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return delimitedLoader{}.Load(path, opt)
}

// Supported reports whether a registered loader claims path.
func Supported(path string) bool {
	for _, l := range registry {
		if l.CanLoad(path) {
			return true
		}
	}
	return false
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func init() {
	Register(delimitedLoader{})
	Register(workbookLoader{})
}
