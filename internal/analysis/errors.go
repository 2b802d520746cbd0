package analysis

import "errors"

var (
	// ErrInjectionDetected indicates the input matched the prompt-injection deny-list.
	ErrInjectionDetected = errors.New("document contains suspicious content that may indicate a prompt injection attack")
	// ErrNoDocuments indicates a comprehensive analysis was requested with zero documents.
	ErrNoDocuments = errors.New("no documents to analyze")
	// ErrTooManyDocuments indicates the document count exceeds the synthesis cap.
	ErrTooManyDocuments = errors.New("too many documents for a single analysis")
	// ErrUnrecoverableOutput indicates the provider output could not be parsed as structured data at all.
	ErrUnrecoverableOutput = errors.New("llm output is not parseable as structured data")
	// ErrEmptyInput indicates the document text was empty after trimming.
	ErrEmptyInput = errors.New("text content cannot be empty")
)

// Error codes surfaced in HTTP error bodies.
const (
	ErrorCodeInjection    = "injection_detected"
	ErrorCodePrecondition = "precondition_failed"
	ErrorCodeLLMOutput    = "llm_output_invalid"
	ErrorCodeInternal     = "internal"
)
