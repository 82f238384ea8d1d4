package expense

import "errors"

// ErrInvalidInput indicates invalid expense input.
var ErrInvalidInput = errors.New("invalid expense input")
