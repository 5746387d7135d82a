package sink

import "errors"

// Sentinel kinds for sink errors.
var (
	ErrUnknownFormat = errors.New("unknown sink format")
	ErrWrite         = errors.New("write scores failed")
)
