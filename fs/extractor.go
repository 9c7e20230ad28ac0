// Package fs provides filesystem-based extraction and upload storage.
package fs

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ghostpen/ghostpen"
)

// Ensure TextExtractor implements ghostpen.Extractor at compile time.
var _ ghostpen.Extractor = (*TextExtractor)(nil)

// TextExtractor reads plain-text and markdown files whole. Undecodable
// bytes are dropped rather than failing the file, matching the tolerant
// behavior expected of user uploads.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the file's contents with invalid UTF-8 sequences removed.
func (e *TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "failed to read %s: %v", path, err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "no extractable text found in %s", path)
	}
	return text, nil
}
