// Package docx extracts plain text from DOCX files. A .docx file is a zip
// archive of WordprocessingML; the document body lives in word/document.xml.
package docx

import (
	"archive/zip"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/ghostpen/ghostpen"
)

// Ensure Extractor implements ghostpen.Extractor at compile time.
var _ ghostpen.Extractor = (*Extractor)(nil)

// Extractor extracts paragraph text from DOCX files.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract concatenates the non-empty paragraphs of the document body,
// blank-line separated.
func (e *Extractor) Extract(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "failed to open DOCX %s: %v", path, err)
	}
	defer zr.Close()

	data, err := readZipFile(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "failed to read DOCX body of %s: %v", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "failed to parse DOCX body of %s: %v", path, err)
	}

	var paragraphs []string
	for _, p := range doc.FindElements("//w:p") {
		var sb strings.Builder
		for _, tEl := range p.FindElements(".//w:t") {
			sb.WriteString(tEl.Text())
		}
		if text := sb.String(); strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	if len(paragraphs) == 0 {
		return "", ghostpen.Errorf(ghostpen.EEXTRACT, "no extractable text found in %s", path)
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// readZipFile returns the contents of the named file inside the archive.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
