// Package model is an unrelated package that shares the covergroup model's name.
package model

// Thing is not a covergroup.
type Thing struct{}

// New creates a thing.
func New(name string) *Thing { return &Thing{} }
