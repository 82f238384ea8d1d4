package meallog

import "errors"

// ErrInvalidInput indicates invalid meal log input.
var ErrInvalidInput = errors.New("invalid meal log input")
