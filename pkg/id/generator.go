package id

import (
	"github.com/google/uuid"
)

// Generate generates a new unique ID.
func Generate() string {
	return uuid.New().String()
}

// Prefixed returns a generator of IDs of the form "<prefix>-<uuid>".
func Prefixed(prefix string) func() string {
	return func() string {
		return prefix + "-" + Generate()
	}
}
