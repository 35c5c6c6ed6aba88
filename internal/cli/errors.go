package cli

import "errors"

var (
	// ErrUsage signals that arguments did not name a valid command.
	ErrUsage = errors.New("cli: invalid usage")

	// ErrUnknownAlgorithm signals an unrecognized -algorithm value.
	ErrUnknownAlgorithm = errors.New("cli: unknown algorithm")
)
