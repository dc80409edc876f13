package model

import (
	"io"

	"github.com/example/covergroup-lite/covergroup/domain"
)

// Child is a coverpoint or cross owned by a covergroup.
// Implementations hold their own bin state; the covergroup only drives them.
type Child interface {
	// Name returns the child's name within its covergroup.
	Name() string

	// Kind reports which child list the model belongs to.
	Kind() domain.ModelKind

	// SetParent records the owning covergroup.
	SetParent(p *Covergroup)

	// Finalize precomputes bin layouts. Called once before the first Sample.
	Finalize() error

	// Sample updates bin state from the current value.
	Sample() error

	// Coverage returns a percentage, nominally in [0, 100].
	Coverage() float64

	// Equals reports structural equality with another child.
	Equals(other Child) bool

	// Clone returns an independent deep copy of the same kind.
	Clone() Child

	// ValueCache returns the most recently sampled value(s).
	ValueCache() any

	// SetValueCache overwrites the most recently sampled value(s).
	SetValueCache(v any)

	// Dump writes a debug tree view of the child.
	Dump(w io.Writer, indent string)
}

// Resetter is implemented by children that can clear accumulated bin state.
// NewInstance resets cloned children that implement it.
type Resetter interface {
	Reset()
}

// Scope is the enclosing scope of a covergroup.
type Scope interface {
	Name() string
}

// Visitor traverses covergroups without the model depending on the tool.
type Visitor interface {
	VisitCovergroup(cg *Covergroup)
}
