package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM completion providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrUnavailable indicates the provider cannot be reached or is not configured.
	ErrUnavailable = errors.New("llm provider unavailable")
	// ErrRateLimited indicates the provider rejected the call with a quota/limit error.
	ErrRateLimited = errors.New("llm provider rate limited")
)

// Unconfigured is the client used when no provider credentials are present.
// Every call reports ErrUnavailable so callers take their degradation path.
type Unconfigured struct{}

// Complete always returns ErrUnavailable.
func (Unconfigured) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUnavailable
}
