package gemini

import (
	"context"
	"time"

	"github.com/ghostpen/ghostpen"
	"google.golang.org/genai"
)

// DefaultModel is used when no generation model is specified.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements ghostpen.Generator at compile time.
var _ ghostpen.Generator = (*Generator)(nil)

// Generator implements ghostpen.Generator using the Gemini API.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a new Generator. An empty model selects
// DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model, timeout: DefaultTimeout}
}

// Generate produces text from a system instruction and a user instruction.
func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	if user == "" {
		return "", ghostpen.Errorf(ghostpen.EINVALID, "user instruction required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: user}},
		}},
		BuildConfig(system),
	)
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EUPSTREAM, "gemini generation failed: %v", err)
	}
	if result == nil {
		return "", ghostpen.Errorf(ghostpen.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Temperature sits above zero so generated prose does not collapse into the
// single most likely phrasing, which reads flatter than any human author.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
