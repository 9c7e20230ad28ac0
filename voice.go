package ghostpen

import "context"

// GenerationRequest asks for text written in one user's voice.
type GenerationRequest struct {
	Prompt    string `json:"prompt"`
	UserID    string `json:"userId"`
	StyleHint string `json:"styleHint,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return Errorf(EINVALID, "prompt required")
	}
	if r.UserID == "" {
		return Errorf(EINVALID, "user ID required")
	}
	return nil
}

// GenerationResult is the outcome of a generation request. A user with no
// ingested samples yields a result with a nil GeneratedText and an
// explanatory Message; that is an expected state, not an error.
type GenerationResult struct {
	GeneratedText *string  `json:"generatedText"`
	StyleProfile  *string  `json:"styleProfile"`
	SourcesUsed   []string `json:"sourcesUsed"`
	Message       string   `json:"message,omitempty"`
}

// NoSamples reports whether the result describes the empty-namespace state.
func (r *GenerationResult) NoSamples() bool {
	return r.GeneratedText == nil
}

// VoiceService generates text imitating a user's authorial voice and
// summarizes that voice as a style profile.
type VoiceService interface {
	// Generate produces text in the user's voice along with the style
	// profile used and the source files that contributed samples.
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)

	// StyleProfile summarizes the user's writing style in a few
	// sentences. Returns a fixed sentinel when the user has no samples.
	StyleProfile(ctx context.Context, userID string) (string, error)
}
