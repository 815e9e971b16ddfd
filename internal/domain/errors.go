package domain

import "errors"

// ErrValidation marks malformed input rejected before any store work.
// Callers wrap it with field detail: fmt.Errorf("%w: ...", ErrValidation).
var ErrValidation = errors.New("validation failed")
