package vendors

import "errors"

var (
	ErrNotFound     = errors.New("vendor not found")
	ErrInvalidInput = errors.New("invalid vendor input")
)
