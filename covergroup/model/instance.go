package model

import (
	"fmt"

	"github.com/example/covergroup-lite/covergroup/domain"
)

// NewInstance derives an instance from type t and binds it to t.
func NewInstance(t *Covergroup, instName string) (*Covergroup, error) {
	inst, err := Derive(t, instName)
	if err != nil {
		return nil, err
	}
	if err := Bind(t, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// Derive builds an unbound instance of type t. The instance's children are
// clones of the type's children in the same order, so the coverpoint lists
// are index-aligned by construction. Cloned children implementing Resetter
// start with empty bin state. Callers that must finalize before binding use
// Derive followed by Bind.
func Derive(t *Covergroup, instName string) (*Covergroup, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type covergroup", domain.ErrNotFound)
	}

	inst := t.Clone()
	inst.instName = instName
	if inst.typename == "" {
		inst.typename = t.name
	}
	for _, c := range inst.coverpoints {
		if r, ok := c.(Resetter); ok {
			r.Reset()
		}
	}
	for _, c := range inst.crosses {
		if r, ok := c.(Resetter); ok {
			r.Reset()
		}
	}
	return inst, nil
}

// Bind associates inst with type t. Both must declare the same coverpoints in
// the same order, and inst must not already be bound.
func Bind(t, inst *Covergroup) error {
	if t == nil || inst == nil {
		return fmt.Errorf("%w: nil covergroup", domain.ErrNotFound)
	}
	if inst.typeCG != nil {
		return fmt.Errorf("%w: %q is an instance of %q",
			domain.ErrAlreadyBound, inst.name, inst.typeCG.name)
	}
	for p := t; p != nil; p = p.typeCG {
		if p == inst {
			return fmt.Errorf("%w: %q", domain.ErrTypeCycle, inst.name)
		}
	}

	if len(t.coverpoints) != len(inst.coverpoints) {
		return fmt.Errorf("%w: type %q has %d coverpoints, instance %q has %d",
			domain.ErrMisaligned, t.name, len(t.coverpoints), inst.name, len(inst.coverpoints))
	}
	for i := range t.coverpoints {
		if t.coverpoints[i].Name() != inst.coverpoints[i].Name() {
			return fmt.Errorf("%w: coverpoint %d is %q on type, %q on instance",
				domain.ErrMisaligned, i, t.coverpoints[i].Name(), inst.coverpoints[i].Name())
		}
	}

	inst.typeCG = t
	t.instances = append(t.instances, inst)
	t.log.V(1).Info("bound instance", "type", t.name, "instance", inst.name, "instname", inst.instName)
	return nil
}
