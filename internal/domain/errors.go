package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProfileNotFound = errors.New("preference profile not found")
	ErrLogNotFound     = errors.New("recommendation log not found")
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrInvalidID       = errors.New("invalid id")
)
