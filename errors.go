package fastlist

import "github.com/hupe1980/fastlist/internal/arena"

// ErrUnknownBackend is returned by ParseBackend for unrecognized names.
var ErrUnknownBackend = arena.ErrUnknownBackend
