package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrBadPosition = errors.New("unknown position filter")
)
