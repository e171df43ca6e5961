package store

import "errors"

// Sentinel errors surfaced to the host for display.
var (
	ErrNotFound     = errors.New("memory not found")
	ErrTextTooShort = errors.New("memory text too short")
)
