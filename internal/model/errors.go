package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrPhaseFailed is returned when at least one task of a pipeline phase failed.
	ErrPhaseFailed = errors.New("phase failed")
)
