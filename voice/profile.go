// Package voice orchestrates retrieval, style profiling, and prompt
// composition to generate text in a user's authorial voice.
package voice

import (
	"context"
	"strings"

	"github.com/ghostpen/ghostpen"
	"golang.org/x/sync/errgroup"
)

// ProfileSentinel is returned when a user has no writing samples. No model
// call is made in that case.
const ProfileSentinel = "No writing samples available yet."

// aspects are the stylistic probes used to sample a user's writing.
// Declared order is assembly order, keeping profiles deterministic for a
// given corpus.
var aspects = []string{
	"descriptive prose and scene setting",
	"dialogue and character voice",
	"sentence rhythm and pacing",
	"emotional tone and atmosphere",
}

const (
	samplesPerAspect = 2
	maxSamples       = 8
	sampleDelimiter  = "\n\n---\n\n"
)

const profileSystemPrompt = "You are a literary analyst. Read these writing samples from a single author " +
	"and describe their style in 3-4 sentences covering: sentence length and rhythm, " +
	"vocabulary level, tone, and any distinctive habits. Be specific and concise."

// Profiler condenses a user's retrieved writing samples into a short
// natural-language description of their style.
type Profiler struct {
	Model ghostpen.Generator
}

// BuildProfile samples the user's writing across the stylistic aspects and
// asks the model for a condensed style summary. Samples retrieved for
// different aspects may overlap; duplicates are kept.
// The aspect queries run concurrently, but the combined sample text
// is always assembled in declared aspect order.
func (p *Profiler) BuildProfile(ctx context.Context, retriever ghostpen.Retriever) (string, error) {
	perAspect := make([][]ghostpen.RetrievalResult, len(aspects))

	g, gctx := errgroup.WithContext(ctx)
	for i, aspect := range aspects {
		g.Go(func() error {
			results, err := retriever.Retrieve(gctx, aspect, samplesPerAspect)
			if err != nil {
				return err
			}
			perAspect[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var samples []string
	for _, results := range perAspect {
		for _, r := range results {
			samples = append(samples, r.Document)
		}
	}
	if len(samples) == 0 {
		return ProfileSentinel, nil
	}
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}

	combined := strings.Join(samples, sampleDelimiter)
	profile, err := p.Model.Generate(ctx, profileSystemPrompt, "SAMPLES:\n"+combined)
	if err != nil {
		return "", ghostpen.Errorf(ghostpen.EUPSTREAM, "style profiling failed: %v", err)
	}
	return strings.TrimSpace(profile), nil
}
