package model

import "errors"

// Sentinel kinds for match validation errors. These allow errors.Is/As
// from callers.
var (
	ErrSelfMatch        = errors.New("match pairs a team with itself")
	ErrNegativeScore    = errors.New("negative score")
	ErrMissingDate      = errors.New("missing match date")
	ErrUnresolvedResult = errors.New("level scores but draws are not allowed")
)
