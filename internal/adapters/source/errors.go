package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrUnknownFormat = errors.New("unknown source format")
	ErrRead          = errors.New("read records failed")
)
