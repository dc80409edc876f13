package bins

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/example/covergroup-lite/covergroup/model"
)

// Cross counts combinations of the bins hit by two or more coverpoints of
// the same covergroup. Coverpoints are referenced by name and resolved
// through the parent covergroup, so a cloned cross binds to the clone's
// coverpoints.
type Cross struct {
	name   string
	parent *model.Covergroup
	refs   []string
	opts   domain.Options

	cps  []*Coverpoint
	hits []int
	last []int
}

// CrossBin is one combination of coverpoint bins.
type CrossBin struct {
	Name string
	Hits int
}

// NewCross creates a cross over the named coverpoints.
func NewCross(name string, coverpoints ...string) *Cross {
	cr := &Cross{
		name: name,
		opts: domain.DefaultOptions(),
	}
	cr.refs = append(cr.refs, coverpoints...)
	return cr
}

func (x *Cross) Name() string            { return x.name }
func (x *Cross) Kind() domain.ModelKind  { return domain.KindCross }
func (x *Cross) Options() domain.Options { return x.opts }

// SetParent records the owning covergroup and drops resolved coverpoints.
func (x *Cross) SetParent(p *model.Covergroup) {
	x.parent = p
	x.cps = nil
}

// SetOptions replaces the cross's options. Zero fields take defaults.
func (x *Cross) SetOptions(o domain.Options) error {
	o = o.WithDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	x.opts = o
	return nil
}

// Coverpoints returns the referenced coverpoint names.
func (x *Cross) Coverpoints() []string {
	out := make([]string, len(x.refs))
	copy(out, x.refs)
	return out
}

func (x *Cross) resolve() error {
	if x.cps != nil {
		return nil
	}
	if x.parent == nil {
		return fmt.Errorf("%w: cross %q has no covergroup", domain.ErrNotFound, x.name)
	}
	cps := make([]*Coverpoint, 0, len(x.refs))
	for _, ref := range x.refs {
		c, ok := x.parent.CoverpointByName(ref)
		if !ok {
			return fmt.Errorf("%w: cross %q references coverpoint %q",
				domain.ErrNotFound, x.name, ref)
		}
		cp, ok := c.(*Coverpoint)
		if !ok {
			return fmt.Errorf("%w: cross %q references %q of type %T",
				domain.ErrUnsupportedModelKind, x.name, ref, c)
		}
		cps = append(cps, cp)
	}
	x.cps = cps
	return nil
}

func (x *Cross) size() int {
	n := 1
	for _, cp := range x.cps {
		n *= len(cp.bins)
	}
	return n
}

// Finalize resolves the referenced coverpoints and lays out one counter per
// bin combination. Counters carried over by Clone are kept if the layout matches.
func (x *Cross) Finalize() error {
	if len(x.refs) == 0 {
		return fmt.Errorf("%w: cross %q has no coverpoints", domain.ErrInvalidConfig, x.name)
	}
	if err := x.resolve(); err != nil {
		return err
	}
	if n := x.size(); len(x.hits) != n {
		x.hits = make([]int, n)
	}
	x.last = nil
	return nil
}

// Sample records the combination of bins hit by the most recent sample of
// each coverpoint. Nothing is recorded unless every coverpoint hit a bin.
func (x *Cross) Sample() error {
	if err := x.resolve(); err != nil {
		return err
	}
	if n := x.size(); len(x.hits) != n {
		x.hits = make([]int, n)
	}

	x.last = nil
	idx := 0
	tuple := make([]int, len(x.cps))
	for i, cp := range x.cps {
		h := cp.LastHit()
		if h < 0 {
			return nil
		}
		tuple[i] = h
		idx = idx*len(cp.bins) + h
	}
	x.hits[idx]++
	x.last = tuple
	return nil
}

// Coverage returns the percentage of bin combinations hit at least AtLeast times.
func (x *Cross) Coverage() float64 {
	if len(x.hits) == 0 {
		return 0
	}
	covered := 0
	for _, h := range x.hits {
		if h >= x.opts.AtLeast {
			covered++
		}
	}
	return float64(covered) / float64(len(x.hits)) * 100
}

// ValueCache returns the bin indices of the last recorded combination, or nil.
func (x *Cross) ValueCache() any {
	if x.last == nil {
		return nil
	}
	out := make([]int, len(x.last))
	copy(out, x.last)
	return out
}

// SetValueCache stores a []int combination. Any other value clears the cache.
func (x *Cross) SetValueCache(v any) {
	t, ok := v.([]int)
	if !ok {
		x.last = nil
		return
	}
	x.last = append([]int(nil), t...)
}

// Reset clears hit counts and the value cache.
func (x *Cross) Reset() {
	for i := range x.hits {
		x.hits[i] = 0
	}
	x.last = nil
}

// Bins returns each combination with its hit count. It is empty until the
// cross has been finalized or sampled.
func (x *Cross) Bins() []CrossBin {
	if x.cps == nil || len(x.hits) != x.size() {
		return nil
	}
	out := make([]CrossBin, len(x.hits))
	for idx := range x.hits {
		names := make([]string, len(x.cps))
		rem := idx
		for i := len(x.cps) - 1; i >= 0; i-- {
			n := len(x.cps[i].bins)
			names[i] = x.cps[i].bins[rem%n].Name
			rem /= n
		}
		out[idx] = CrossBin{Name: "<" + strings.Join(names, ",") + ">", Hits: x.hits[idx]}
	}
	return out
}

// Equals compares name and referenced coverpoints in order.
func (x *Cross) Equals(other model.Child) bool {
	o, ok := other.(*Cross)
	if !ok || x.name != o.name || len(x.refs) != len(o.refs) {
		return false
	}
	for i := range x.refs {
		if x.refs[i] != o.refs[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy including hit counts. The clone resolves its
// coverpoints against whichever covergroup it is added to.
func (x *Cross) Clone() model.Child {
	ret := NewCross(x.name, x.refs...)
	ret.opts = x.opts
	if x.hits != nil {
		ret.hits = append([]int(nil), x.hits...)
	}
	if x.last != nil {
		ret.last = append([]int(nil), x.last...)
	}
	return ret
}

// Dump writes the cross and its hit combinations.
func (x *Cross) Dump(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sCross %s {%s}\n", indent, x.name, strings.Join(x.refs, ", "))
	for _, b := range x.Bins() {
		if b.Hits > 0 {
			fmt.Fprintf(w, "%s%sbin %s hits=%d\n", indent, x.opts.DumpIndent, b.Name, b.Hits)
		}
	}
}
