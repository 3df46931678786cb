// Package source turns descriptor bytes into the generic value tree consumed
// by the model and prints trees back to JSON.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the text encoding of a descriptor file.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatOf guesses the format from a file extension; unknown extensions are JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// ErrNotObject is returned when the top-level value is not an object.
var ErrNotObject = errors.New("source: top-level value is not an object")

// Tree is a decoded descriptor document.
type Tree struct {
	Root map[string]any
	// Duplicates lists key paths of object keys that appeared more than once.
	Duplicates [][]string
}

// Options bounds decoding.
type Options struct {
	// MaxDepth limits object/array nesting; <= 0 means unlimited.
	MaxDepth int
}

// Decode dispatches on format.
func Decode(data []byte, format Format, opts Options) (Tree, error) {
	switch format {
	case YAML:
		return DecodeYAML(data)
	case JSON:
		return DecodeJSON(data, opts)
	}
	return Tree{}, fmt.Errorf("source: unsupported format %d", int(format))
}
