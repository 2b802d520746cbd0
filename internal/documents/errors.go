package documents

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid document input")
	ErrUnsupportedFile = errors.New("unsupported file")
)
