package repository

import "errors"

// Sentinel kinds for table store errors.
var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrTeamNotFound     = errors.New("team not found")
	ErrEmptyAlgorithm   = errors.New("table algorithm must not be empty")
)
