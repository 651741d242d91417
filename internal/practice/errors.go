package practice

import "errors"

// ErrInvalidCount is returned by Increment for non-positive counts.
var ErrInvalidCount = errors.New("increment must be positive")
