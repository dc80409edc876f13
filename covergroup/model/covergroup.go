// Package model implements the runtime covergroup model: a named collection of
// coverpoints and crosses that is sampled on each coverage event.
//
// A covergroup is either a type (the declaration) or an instance of a type.
// Sampling an instance updates its own children and then pushes each
// coverpoint's value cache into the index-aligned coverpoint of its type
// before sampling the type, so the type accumulates hits across every
// instance.
//
// The model is not safe for concurrent use. All sampling for covergroups
// sharing a type must be serialized by the caller.
package model

import (
	"fmt"
	"io"
	"os"

	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/go-logr/logr"
)

// Covergroup is a covergroup type or instance.
type Covergroup struct {
	name     string
	typename string
	duName   string
	instName string
	parent   Scope

	// typeCG is a non-owning handle to the type of an instance.
	typeCG *Covergroup
	// instances is a non-owning list of instances bound to this type.
	instances []*Covergroup

	coverpoints []Child
	crosses     []Child

	opts domain.Options
	log  logr.Logger
	out  io.Writer
}

// Option configures a Covergroup constructed by New.
type Option func(*Covergroup)

// WithLogger sets the logger used for finalize and propagation messages.
func WithLogger(l logr.Logger) Option {
	return func(cg *Covergroup) { cg.log = l }
}

// WithOutput sets the writer Dump writes to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(cg *Covergroup) { cg.out = w }
}

// WithOptions sets coverage options. Zero fields take their defaults. New
// logs and discards options that fail validation, keeping the defaults.
func WithOptions(o domain.Options) Option {
	return func(cg *Covergroup) { cg.opts = o.WithDefaults() }
}

// New creates an empty covergroup with the given name.
func New(name string, opts ...Option) *Covergroup {
	cg := &Covergroup{
		name: name,
		opts: domain.DefaultOptions(),
		log:  logr.Discard(),
		out:  os.Stdout,
	}
	for _, o := range opts {
		if o != nil {
			o(cg)
		}
	}
	if err := cg.opts.Validate(); err != nil {
		cg.log.Error(err, "ignoring invalid covergroup options", "covergroup", name)
		cg.opts = domain.DefaultOptions()
	}
	return cg
}

func (cg *Covergroup) Name() string            { return cg.name }
func (cg *Covergroup) Typename() string        { return cg.typename }
func (cg *Covergroup) SetTypename(n string)    { cg.typename = n }
func (cg *Covergroup) DUName() string          { return cg.duName }
func (cg *Covergroup) SetDUName(n string)      { cg.duName = n }
func (cg *Covergroup) InstName() string        { return cg.instName }
func (cg *Covergroup) SetInstName(n string)    { cg.instName = n }
func (cg *Covergroup) Parent() Scope           { return cg.parent }
func (cg *Covergroup) SetParent(p Scope)       { cg.parent = p }
func (cg *Covergroup) Options() domain.Options { return cg.opts }

// SetOptions replaces the coverage options after validating them.
func (cg *Covergroup) SetOptions(o domain.Options) error {
	o = o.WithDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	cg.opts = o
	return nil
}

// TypeCovergroup returns the type this covergroup is an instance of, or nil
// for a type.
func (cg *Covergroup) TypeCovergroup() *Covergroup { return cg.typeCG }

// Instances returns the instances bound to this type.
func (cg *Covergroup) Instances() []*Covergroup {
	out := make([]*Covergroup, len(cg.instances))
	copy(out, cg.instances)
	return out
}

// HasInstances reports whether any instance is bound to cg.
func (cg *Covergroup) HasInstances() bool { return len(cg.instances) > 0 }

// Coverpoints returns the coverpoints in declared order.
func (cg *Covergroup) Coverpoints() []Child {
	out := make([]Child, len(cg.coverpoints))
	copy(out, cg.coverpoints)
	return out
}

// Crosses returns the crosses in declared order.
func (cg *Covergroup) Crosses() []Child {
	out := make([]Child, len(cg.crosses))
	copy(out, cg.crosses)
	return out
}

// CoverpointByName returns the coverpoint with the given name.
func (cg *Covergroup) CoverpointByName(name string) (Child, bool) {
	for _, cp := range cg.coverpoints {
		if cp.Name() == name {
			return cp, true
		}
	}
	return nil, false
}

// AddCoverpoint registers a coverpoint or cross and returns it.
// The child is placed in the coverpoint or cross list according to its Kind.
func (cg *Covergroup) AddCoverpoint(cp Child) (Child, error) {
	if cp == nil {
		return nil, fmt.Errorf("%w: nil model", domain.ErrUnsupportedModelKind)
	}

	switch cp.Kind() {
	case domain.KindCoverpoint:
		cg.coverpoints = append(cg.coverpoints, cp)
	case domain.KindCross:
		cg.crosses = append(cg.crosses, cp)
	default:
		return nil, fmt.Errorf("%w: %s (%T)", domain.ErrUnsupportedModelKind, cp.Kind(), cp)
	}
	cp.SetParent(cg)
	return cp, nil
}

// Finalize finalizes every coverpoint, then every cross.
// It must be called once, after all children are added and before the first Sample.
func (cg *Covergroup) Finalize() error {
	cg.log.V(1).Info("finalizing covergroup", "covergroup", cg.name,
		"coverpoints", len(cg.coverpoints), "crosses", len(cg.crosses))

	for _, cp := range cg.coverpoints {
		if err := cp.Finalize(); err != nil {
			return err
		}
	}
	for _, cr := range cg.crosses {
		if err := cr.Finalize(); err != nil {
			return err
		}
	}
	return nil
}

// Sample samples every coverpoint, then every cross. If the covergroup is an
// instance, each coverpoint's value cache is copied into the type's coverpoint
// at the same index and the type is sampled in turn.
//
// Errors from children are returned as-is; children sampled before the
// failure keep their updated state.
func (cg *Covergroup) Sample() error {
	for _, cp := range cg.coverpoints {
		cg.log.V(2).Info("sampling coverpoint", "covergroup", cg.name, "coverpoint", cp.Name())
		if err := cp.Sample(); err != nil {
			return err
		}
	}
	for _, cr := range cg.crosses {
		cg.log.V(2).Info("sampling cross", "covergroup", cg.name, "cross", cr.Name())
		if err := cr.Sample(); err != nil {
			return err
		}
	}

	t := cg.typeCG
	if t == nil {
		return nil
	}

	if len(t.coverpoints) != len(cg.coverpoints) {
		return fmt.Errorf("%w: instance %q has %d coverpoints, type %q has %d",
			domain.ErrMisaligned, cg.name, len(cg.coverpoints), t.name, len(t.coverpoints))
	}
	for i, cp := range cg.coverpoints {
		t.coverpoints[i].SetValueCache(cp.ValueCache())
	}

	cg.log.V(1).Info("propagating sample to type", "instance", cg.name, "type", t.name)
	return t.Sample()
}

// Coverage returns the mean coverage of all coverpoints and crosses.
// A covergroup with no children is vacuously 100% covered.
// Child values are not clamped.
func (cg *Covergroup) Coverage() float64 {
	n := len(cg.coverpoints) + len(cg.crosses)
	if n == 0 {
		return 100.0
	}

	var sum float64
	for _, cp := range cg.coverpoints {
		sum += cp.Coverage()
	}
	for _, cr := range cg.crosses {
		sum += cr.Coverage()
	}
	return sum / float64(n)
}

// InstCoverage is reserved for per-instance coverage and always returns 0.
func (cg *Covergroup) InstCoverage() float64 {
	return 0.0
}

// GoalMet reports whether Coverage has reached the configured goal.
func (cg *Covergroup) GoalMet() bool {
	return cg.Coverage() >= cg.opts.Goal
}

// Accept calls the visitor's covergroup entry point with cg.
func (cg *Covergroup) Accept(v Visitor) {
	v.VisitCovergroup(cg)
}

// Dump writes the covergroup and its children as an indented tree.
func (cg *Covergroup) Dump(indent string) {
	fmt.Fprintf(cg.out, "%sCovergroup %s\n", indent, cg.name)
	child := indent + cg.opts.DumpIndent
	for _, cp := range cg.coverpoints {
		cp.Dump(cg.out, child)
	}
	for _, cr := range cg.crosses {
		cr.Dump(cg.out, child)
	}
}

// Equals reports whether two covergroups have the same name and pairwise
// equal coverpoints and crosses in the same order. Type and instance
// associations and design-unit metadata are ignored.
func (cg *Covergroup) Equals(other *Covergroup) bool {
	if other == nil {
		return false
	}
	nameEq := cg.name == other.name
	cpEq := childrenEqual(cg.coverpoints, other.coverpoints)
	crEq := childrenEqual(cg.crosses, other.crosses)
	return nameEq && cpEq && crEq
}

func childrenEqual(a, b []Child) bool {
	if len(a) != len(b) {
		return false
	}
	eq := true
	for i := range a {
		if !a[i].Equals(b[i]) {
			eq = false
		}
	}
	return eq
}

// Clone returns a deep copy of cg. Children are cloned and re-registered
// through AddCoverpoint. The clone has no type and no instances.
func (cg *Covergroup) Clone() *Covergroup {
	ret := &Covergroup{
		name:     cg.name,
		typename: cg.typename,
		duName:   cg.duName,
		instName: cg.instName,
		opts:     cg.opts,
		log:      cg.log,
		out:      cg.out,
	}

	for _, cp := range cg.coverpoints {
		ret.mustAdd(cp.Clone())
	}
	for _, cr := range cg.crosses {
		ret.mustAdd(cr.Clone())
	}
	return ret
}

// mustAdd panics if a cloned child no longer reports a supported kind.
func (cg *Covergroup) mustAdd(c Child) {
	if _, err := cg.AddCoverpoint(c); err != nil {
		panic(fmt.Sprintf("clone of covergroup %q: %v", cg.name, err))
	}
}
