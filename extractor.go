package ghostpen

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extractor converts a file of one specific format into plain text.
// Implementations live in format-specific subpackages (pdf/, docx/).
type Extractor interface {
	// Extract reads the file at path and returns its plain text.
	// Returns EEXTRACT if the file cannot yield any text.
	Extract(path string) (string, error)
}

// ExtractorRegistry dispatches extraction by file extension over a closed
// set of registered formats.
type ExtractorRegistry struct {
	extractors map[string]Extractor
}

// NewExtractorRegistry returns an empty registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{extractors: make(map[string]Extractor)}
}

// Register associates a lowercased extension (including the dot) with an
// extractor. Registering the same extension twice overwrites the earlier
// entry.
func (r *ExtractorRegistry) Register(ext string, e Extractor) {
	r.extractors[strings.ToLower(ext)] = e
}

// Supported reports whether the registry can extract the given path.
func (r *ExtractorRegistry) Supported(path string) bool {
	_, ok := r.extractors[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the registered extensions in lexicographic order.
func (r *ExtractorRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract dispatches to the extractor registered for the path's extension.
// Returns EUNSUPPORTED for an unregistered extension.
func (r *ExtractorRegistry) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.extractors[ext]
	if !ok {
		return "", Errorf(EUNSUPPORTED, "unsupported file type %q, allowed: %s",
			ext, strings.Join(r.Extensions(), ", "))
	}
	return e.Extract(path)
}
