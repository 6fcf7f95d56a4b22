package source

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrFetch  = errors.New("player pool fetch failed")
	ErrDecode = errors.New("player pool decode failed")
)
