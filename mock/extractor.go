package mock

import "github.com/ghostpen/ghostpen"

var _ ghostpen.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ghostpen.Extractor.
type Extractor struct {
	ExtractFn func(path string) (string, error)
}

func (e *Extractor) Extract(path string) (string, error) {
	return e.ExtractFn(path)
}
