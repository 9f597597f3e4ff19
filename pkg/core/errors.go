package core

import "errors"

// Common errors.
var (
	ErrNotFound          = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
)
