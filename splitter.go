package ghostpen

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators orders split preferences from paragraph breaks down to
// single spaces. A hard character cut is the implicit last resort.
var DefaultSeparators = []string{"\n\n", "\n", ".", " "}

// Splitter cuts plain text into overlapping chunks bounded by ChunkSize.
// It prefers the highest-priority separator that fits within the size
// budget, so chunks tend to end on paragraph, line, or sentence boundaries.
// The trailing ChunkOverlap characters of each chunk are repeated at the
// start of the next one to preserve local continuity across boundaries.
// Sizes are measured in runes, never in bytes: a cut can never land inside
// a multi-byte character.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// NewSplitter returns a Splitter with the deployment defaults.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:    ChunkSize,
		ChunkOverlap: ChunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split returns the ordered chunks of text. Empty or whitespace-only input
// yields no chunks. Text within the size budget is returned whole.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.ChunkSize
		if end >= len(runes) {
			if tail := string(runes[start:]); strings.TrimSpace(tail) != "" {
				chunks = append(chunks, tail)
			}
			break
		}

		cut := s.cutPoint(string(runes[start:end]))
		chunkEnd := start + cut
		if chunk := string(runes[start:chunkEnd]); strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}

		// Step back by the overlap, but always make forward progress.
		next := chunkEnd - s.ChunkOverlap
		if next <= start {
			next = chunkEnd
		}
		start = next
	}
	return chunks
}

// cutPoint returns the best split position within a full-size window,
// measured in runes: the last occurrence of the highest-priority separator
// that leaves a non-empty chunk, or the window length when no separator
// fits (hard cut).
func (s *Splitter) cutPoint(window string) int {
	for _, sep := range s.Separators {
		if i := strings.LastIndex(window, sep); i > 0 {
			return utf8.RuneCountInString(window[:i]) + utf8.RuneCountInString(sep)
		}
	}
	return utf8.RuneCountInString(window)
}
