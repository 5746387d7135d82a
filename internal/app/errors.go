package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoActual = errors.New("actual outcome not configured")
)
