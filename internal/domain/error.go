package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("pattern not found")
	ErrAlreadyExists   = errors.New("pattern already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
