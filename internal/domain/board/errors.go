package board

import "errors"

// Sentinel kinds for board errors.
var (
	ErrNotReady      = errors.New("board not ready")
	ErrUnknownTier   = errors.New("unknown tier")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrTooManyTiers  = errors.New("tier limit reached")
)
