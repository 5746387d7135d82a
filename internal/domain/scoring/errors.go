package scoring

import "errors"

// Sentinel error kinds for scoring.
var (
	// ErrNoGuesses is returned for an empty batch; difficulty is undefined
	// without at least one guess.
	ErrNoGuesses = errors.New("no guesses to score")
)
