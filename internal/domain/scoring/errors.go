package scoring

import "errors"

// Sentinel kinds for scoring errors. All of them abort a scoring pass.
var (
	ErrMismatchedEvent = errors.New("result and guess refer to different events")
	ErrMalformedEvent  = errors.New("malformed event")
	ErrMissingGuess    = errors.New("no guess for event")
	ErrCountryNotFound = errors.New("country not found")
)
