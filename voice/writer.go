package voice

import (
	"context"
	"sort"
	"strings"

	"github.com/ghostpen/ghostpen"
)

// Ensure Writer implements ghostpen.VoiceService at compile time.
var _ ghostpen.VoiceService = (*Writer)(nil)

// Writer generates text in a user's voice: it retrieves the chunks most
// relevant to the prompt, profiles the user's broader style, and conditions
// the generative model on both.
type Writer struct {
	Store ghostpen.ChunkStore
	Model ghostpen.Generator

	// MaxResults bounds prompt-relevant retrieval. Zero means
	// ghostpen.DefaultMaxResults.
	MaxResults int
}

// NewWriter creates a new Writer.
func NewWriter(store ghostpen.ChunkStore, model ghostpen.Generator) *Writer {
	return &Writer{Store: store, Model: model}
}

func (w *Writer) maxResults() int {
	if w.MaxResults > 0 {
		return w.MaxResults
	}
	return ghostpen.DefaultMaxResults
}

// Generate produces text in the user's voice. A user with no ingested
// samples gets a no-samples result without any model being contacted; that
// is an expected state, not a failure.
func (w *Writer) Generate(ctx context.Context, req ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	count, err := w.Store.Count(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &ghostpen.GenerationResult{
			SourcesUsed: []string{},
			Message:     "No writing samples uploaded yet. Please upload some of your work first.",
		}, nil
	}

	retriever := ghostpen.NewStoreRetriever(w.Store, req.UserID)
	retriever.MaxResults = w.maxResults()

	relevant, err := retriever.Retrieve(ctx, req.Prompt, w.maxResults())
	if err != nil {
		return nil, err
	}
	sources := distinctSources(relevant)

	profiler := &Profiler{Model: w.Model}
	profile, err := profiler.BuildProfile(ctx, retriever)
	if err != nil {
		return nil, err
	}

	system := BuildSystemPrompt(profile, relevant)
	user := BuildUserPrompt(req.Prompt, req.StyleHint)

	generated, err := w.Model.Generate(ctx, system, user)
	if err != nil {
		return nil, ghostpen.Errorf(ghostpen.EUPSTREAM, "generation failed: %v", err)
	}

	text := strings.TrimSpace(generated)
	return &ghostpen.GenerationResult{
		GeneratedText: &text,
		StyleProfile:  &profile,
		SourcesUsed:   sources,
	}, nil
}

// StyleProfile summarizes the user's writing style over their namespace.
func (w *Writer) StyleProfile(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ghostpen.Errorf(ghostpen.EINVALID, "user ID required")
	}
	retriever := ghostpen.NewStoreRetriever(w.Store, userID)
	profiler := &Profiler{Model: w.Model}
	return profiler.BuildProfile(ctx, retriever)
}

// BuildSystemPrompt composes the system instruction embedding the style
// profile and the retrieved writing samples.
func BuildSystemPrompt(profile string, samples []ghostpen.RetrievalResult) string {
	texts := make([]string, 0, len(samples))
	for _, s := range samples {
		texts = append(texts, s.Document)
	}

	var sb strings.Builder
	sb.WriteString("You are a writing assistant that generates text ONLY in the style of the provided author samples. ")
	sb.WriteString("Study the samples carefully: their voice, rhythm, word choices, and structure. ")
	sb.WriteString("Then continue or create new content that is indistinguishable from their own writing. ")
	sb.WriteString("Do NOT default to a generic style. Mirror the author exactly.\n\n")
	sb.WriteString("AUTHOR STYLE PROFILE:\n")
	sb.WriteString(profile)
	sb.WriteString("\n\nWRITING SAMPLES FROM THIS AUTHOR:\n")
	sb.WriteString(strings.Join(texts, sampleDelimiter))
	return sb.String()
}

// BuildUserPrompt composes the user instruction from the task prompt plus,
// when present, the style hint as additional guidance.
func BuildUserPrompt(prompt, styleHint string) string {
	user := "Task: " + prompt
	if styleHint != "" {
		user += "\nAdditional guidance: " + styleHint
	}
	return user
}

// distinctSources returns the unique source filenames of the results in
// lexicographic order.
func distinctSources(results []ghostpen.RetrievalResult) []string {
	seen := make(map[string]bool)
	sources := []string{}
	for _, r := range results {
		if r.SourceFile == "" || seen[r.SourceFile] {
			continue
		}
		seen[r.SourceFile] = true
		sources = append(sources, r.SourceFile)
	}
	sort.Strings(sources)
	return sources
}
