package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrClosed      = errors.New("store closed")
	ErrOpen        = errors.New("store open failed")
	ErrWriteFailed = errors.New("store write failed")
)
