package app

import "errors"

var (
	// ErrNoSource is returned by Start when no match source was
	// configured.
	ErrNoSource = errors.New("app: no match source configured")
)
