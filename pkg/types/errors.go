package types

import "errors"

// Store and registry errors.
var (
	ErrOutOfRange    = errors.New("client index out of range")
	ErrInvalidFormat = errors.New("invalid number format")
	ErrInvalidField  = errors.New("invalid client field")
	ErrUnknownKind   = errors.New("unknown interaction type")
)

// ErrIO reports that a data file could not be opened or written. Load
// failures are recoverable: the caller keeps its previous state.
var ErrIO = errors.New("data file unavailable")

// ErrUnreadable reports that a data file opened but its content could not
// be read. It is not recoverable: saving over the file would destroy it.
var ErrUnreadable = errors.New("data file unreadable")
