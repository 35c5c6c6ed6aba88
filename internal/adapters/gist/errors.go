package gist

import "errors"

// Sentinel kinds for gist errors.
var (
	ErrMissingToken = errors.New("gist token must not be empty")
	ErrNotFound     = errors.New("gist not found")
	ErrRequest      = errors.New("gist request failed")
)

// errNoGist is internal: no gist matched the name during lookup.
var errNoGist = errors.New("no matching gist")
