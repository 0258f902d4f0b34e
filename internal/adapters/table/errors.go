package table

import "errors"

// Sentinel kinds for table errors.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidScore  = errors.New("invalid score")
)
