// Package scoreboard fetches completed matches from the NCAA
// scoreboard feed.
package scoreboard

import "errors"

// Sentinel kinds for scoreboard fetch errors.
var (
	ErrBadStatus = errors.New("unexpected scoreboard response status")
	ErrDecode    = errors.New("scoreboard payload decode failed")
	ErrDirectory = errors.New("school directory fetch failed")
)
