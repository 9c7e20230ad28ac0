// Package pdf extracts plain text from PDF files.
package pdf

import (
	"strings"

	"github.com/ghostpen/ghostpen"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements ghostpen.Extractor at compile time.
var _ ghostpen.Extractor = (*Extractor)(nil)

// Extractor extracts text from PDF files page by page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract concatenates the extractable text of every page, skipping pages
// with no text, joined with blank lines. Pages that fail to decode are
// skipped rather than failing the whole file; only a file yielding no text
// at all is an error.
func (e *Extractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "failed to parse PDF %s: %v", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "no extractable text found in %s", path)
	}
	return strings.Join(pages, "\n\n"), nil
}
