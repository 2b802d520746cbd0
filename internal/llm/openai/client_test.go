package openai

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"

	"tprm-backend/internal/llm"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
	if _, err := NewClient("sk-test", "gpt-4o-mini"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsReasoningModel(t *testing.T) {
	cases := map[string]bool{
		"gpt-4o-mini": false,
		"gpt-4.1":     false,
		"o1-mini":     true,
		"o3":          true,
		"o4-mini":     true,
		"gpt-5-mini":  true,
		" GPT-5 ":     true,
	}
	for model, want := range cases {
		if got := isReasoningModel(model); got != want {
			t.Errorf("isReasoningModel(%q) = %v, want %v", model, got, want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}
	if err := classifyError(rateLimited); !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("429 should map to ErrRateLimited, got %v", err)
	}

	unauthorized := &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}
	if err := classifyError(unauthorized); !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("401 should map to ErrUnavailable, got %v", err)
	}

	other := errors.New("boom")
	if err := classifyError(other); !errors.Is(err, other) {
		t.Fatalf("unrelated errors must pass through, got %v", err)
	}
}
