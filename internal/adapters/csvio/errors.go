package csvio

import "errors"

// Sentinel kinds for CSV errors.
var (
	ErrParse = errors.New("csv parse failed")
)
