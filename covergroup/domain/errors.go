package domain

import "errors"

var (
	// ErrUnsupportedModelKind is returned when a child model of an unknown kind
	// is registered with a covergroup.
	ErrUnsupportedModelKind = errors.New("unsupported model kind")

	// ErrNotFound is returned when a requested covergroup, instance or coverpoint doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig is returned when options or bin declarations are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMisaligned is returned when an instance's coverpoint layout doesn't
	// match the layout of its type.
	ErrMisaligned = errors.New("instance layout does not match type")

	// ErrAlreadyBound is returned when an instance is already associated with a type.
	ErrAlreadyBound = errors.New("instance already bound to a type")

	// ErrTypeCycle is returned when binding would make a covergroup an instance of itself.
	ErrTypeCycle = errors.New("type association cycle")

	// ErrSampleFailed is returned when a coverpoint target cannot produce a value.
	ErrSampleFailed = errors.New("sample failed")
)
