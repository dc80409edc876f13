// Package bins provides coverpoint and cross models that plug into a
// covergroup. Coverpoints partition an integer value space into inclusive
// ranges; crosses count combinations of their coverpoints' bins.
package bins

import (
	"fmt"
	"io"

	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/example/covergroup-lite/covergroup/model"
)

// Target produces the value a coverpoint samples.
type Target func() (int64, error)

// Bin is an inclusive value range and its hit count.
type Bin struct {
	Name string
	Lo   int64
	Hi   int64
	Hits int
}

// Value returns a bin matching a single value.
func Value(name string, v int64) Bin {
	return Bin{Name: name, Lo: v, Hi: v}
}

// Range returns a bin matching lo..hi inclusive.
func Range(name string, lo, hi int64) Bin {
	return Bin{Name: name, Lo: lo, Hi: hi}
}

func (b Bin) contains(v int64) bool {
	return v >= b.Lo && v <= b.Hi
}

// Coverpoint is a single coverage axis.
//
// Type-level coverpoints normally have no target; they sample whatever value
// an instance pushed into their value cache.
type Coverpoint struct {
	name   string
	parent *model.Covergroup
	target Target
	bins   []Bin
	opts   domain.Options

	cache   *int64
	lastHit int
}

// NewCoverpoint creates a coverpoint with the given bins.
func NewCoverpoint(name string, bins ...Bin) *Coverpoint {
	cp := &Coverpoint{
		name:    name,
		opts:    domain.DefaultOptions(),
		lastHit: -1,
	}
	cp.bins = append(cp.bins, bins...)
	return cp
}

// AddBin appends a bin and returns the coverpoint.
func (c *Coverpoint) AddBin(b Bin) *Coverpoint {
	c.bins = append(c.bins, b)
	return c
}

// SetTarget sets the function sampled on each Sample call.
func (c *Coverpoint) SetTarget(t Target) *Coverpoint {
	c.target = t
	return c
}

// SetOptions replaces the coverpoint's options. Zero fields take defaults.
func (c *Coverpoint) SetOptions(o domain.Options) error {
	o = o.WithDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	c.opts = o
	return nil
}

func (c *Coverpoint) Name() string                  { return c.name }
func (c *Coverpoint) Kind() domain.ModelKind        { return domain.KindCoverpoint }
func (c *Coverpoint) SetParent(p *model.Covergroup) { c.parent = p }
func (c *Coverpoint) Parent() *model.Covergroup     { return c.parent }
func (c *Coverpoint) Options() domain.Options       { return c.opts }

// LastHit returns the index of the first bin hit by the most recent sample,
// or -1 if the sample hit nothing.
func (c *Coverpoint) LastHit() int { return c.lastHit }

// Bins returns a copy of the bins.
func (c *Coverpoint) Bins() []Bin {
	out := make([]Bin, len(c.bins))
	copy(out, c.bins)
	return out
}

// Finalize checks the bin declarations.
func (c *Coverpoint) Finalize() error {
	for _, b := range c.bins {
		if b.Lo > b.Hi {
			return fmt.Errorf("%w: coverpoint %q bin %q has lo %d > hi %d",
				domain.ErrInvalidConfig, c.name, b.Name, b.Lo, b.Hi)
		}
	}
	c.lastHit = -1
	return nil
}

// Sample evaluates the target, if any, into the value cache and increments
// every bin containing the cached value. A coverpoint whose covergroup has
// bound instances samples the value its instance pushed and never reads its
// own target.
func (c *Coverpoint) Sample() error {
	if c.target != nil && !c.typeLevel() {
		v, err := c.target()
		if err != nil {
			return fmt.Errorf("%w: coverpoint %q: %w", domain.ErrSampleFailed, c.name, err)
		}
		c.cache = &v
	}

	c.lastHit = -1
	if c.cache == nil {
		return nil
	}
	v := *c.cache
	for i := range c.bins {
		if c.bins[i].contains(v) {
			c.bins[i].Hits++
			if c.lastHit < 0 {
				c.lastHit = i
			}
		}
	}
	return nil
}

func (c *Coverpoint) typeLevel() bool {
	return c.parent != nil && c.parent.HasInstances()
}

// Coverage returns the percentage of bins hit at least AtLeast times.
// A coverpoint with no bins reports 0.
func (c *Coverpoint) Coverage() float64 {
	if len(c.bins) == 0 {
		return 0
	}
	covered := 0
	for _, b := range c.bins {
		if b.Hits >= c.opts.AtLeast {
			covered++
		}
	}
	return float64(covered) / float64(len(c.bins)) * 100
}

// ValueCache returns the last sampled value as an int64, or nil.
func (c *Coverpoint) ValueCache() any {
	if c.cache == nil {
		return nil
	}
	return *c.cache
}

// SetValueCache stores an int64 or int value. Any other value clears the cache.
func (c *Coverpoint) SetValueCache(v any) {
	switch x := v.(type) {
	case int64:
		c.cache = &x
	case int:
		n := int64(x)
		c.cache = &n
	default:
		c.cache = nil
	}
}

// Reset clears hit counts and the value cache.
func (c *Coverpoint) Reset() {
	for i := range c.bins {
		c.bins[i].Hits = 0
	}
	c.cache = nil
	c.lastHit = -1
}

// Equals compares name and bin layout. Hit counts are not compared.
func (c *Coverpoint) Equals(other model.Child) bool {
	o, ok := other.(*Coverpoint)
	if !ok || c.name != o.name || len(c.bins) != len(o.bins) {
		return false
	}
	for i := range c.bins {
		a, b := c.bins[i], o.bins[i]
		if a.Name != b.Name || a.Lo != b.Lo || a.Hi != b.Hi {
			return false
		}
	}
	return true
}

// Clone returns a deep copy including hit counts. The target is shared.
func (c *Coverpoint) Clone() model.Child {
	ret := &Coverpoint{
		name:    c.name,
		target:  c.target,
		bins:    c.Bins(),
		opts:    c.opts,
		lastHit: c.lastHit,
	}
	if c.cache != nil {
		v := *c.cache
		ret.cache = &v
	}
	return ret
}

// Dump writes the coverpoint and its bins.
func (c *Coverpoint) Dump(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sCoverpoint %s\n", indent, c.name)
	for _, b := range c.bins {
		fmt.Fprintf(w, "%s%sbin %s [%d:%d] hits=%d\n", indent, c.opts.DumpIndent, b.Name, b.Lo, b.Hi, b.Hits)
	}
}
