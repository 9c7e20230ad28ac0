package mock

import (
	"context"

	"github.com/ghostpen/ghostpen"
)

var _ ghostpen.VoiceService = (*VoiceService)(nil)

// VoiceService is a mock implementation of ghostpen.VoiceService.
type VoiceService struct {
	GenerateFn     func(ctx context.Context, req ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error)
	StyleProfileFn func(ctx context.Context, userID string) (string, error)
}

func (s *VoiceService) Generate(ctx context.Context, req ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
	return s.GenerateFn(ctx, req)
}

func (s *VoiceService) StyleProfile(ctx context.Context, userID string) (string, error) {
	return s.StyleProfileFn(ctx, userID)
}
