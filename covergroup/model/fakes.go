package model

import (
	"fmt"
	"io"

	"github.com/example/covergroup-lite/covergroup/domain"
)

// CallLog records the order of calls made on fake children.
type CallLog struct {
	Calls []string
}

func (l *CallLog) record(op, name string) {
	if l != nil {
		l.Calls = append(l.Calls, op+":"+name)
	}
}

// FakeChild is a test double for Child.
// It holds a fixed coverage value and records Finalize and Sample calls.
type FakeChild struct {
	ChildName string
	ChildKind domain.ModelKind

	// Cov is returned by Coverage.
	Cov float64

	// Cache is the value cache.
	Cache any

	// Next, when set, is stored into Cache on every Sample.
	Next func() any

	// SampleErr is returned by Sample when set.
	SampleErr error

	// FinalizeErr is returned by Finalize when set.
	FinalizeErr error

	Log       *CallLog
	Parent    *Covergroup
	Finalized int
	Samples   int
	Resets    int
}

// NewFakeCoverpoint creates a coverpoint-kind FakeChild.
func NewFakeCoverpoint(name string, cov float64, log *CallLog) *FakeChild {
	return &FakeChild{ChildName: name, ChildKind: domain.KindCoverpoint, Cov: cov, Log: log}
}

// NewFakeCross creates a cross-kind FakeChild.
func NewFakeCross(name string, cov float64, log *CallLog) *FakeChild {
	return &FakeChild{ChildName: name, ChildKind: domain.KindCross, Cov: cov, Log: log}
}

func (f *FakeChild) Name() string            { return f.ChildName }
func (f *FakeChild) Kind() domain.ModelKind  { return f.ChildKind }
func (f *FakeChild) SetParent(p *Covergroup) { f.Parent = p }
func (f *FakeChild) Coverage() float64       { return f.Cov }
func (f *FakeChild) ValueCache() any         { return f.Cache }
func (f *FakeChild) SetValueCache(v any)     { f.Cache = v }

// Reset implements Resetter.
func (f *FakeChild) Reset() {
	f.Resets++
	f.Cache = nil
	f.Cov = 0
}

// Finalize implements Child.
func (f *FakeChild) Finalize() error {
	f.Log.record("finalize", f.ChildName)
	if f.FinalizeErr != nil {
		return f.FinalizeErr
	}
	f.Finalized++
	return nil
}

// Sample implements Child.
func (f *FakeChild) Sample() error {
	f.Log.record("sample", f.ChildName)
	if f.SampleErr != nil {
		return f.SampleErr
	}
	f.Samples++
	if f.Next != nil {
		f.Cache = f.Next()
	}
	return nil
}

// Equals implements Child. Fakes compare by name and kind.
func (f *FakeChild) Equals(other Child) bool {
	o, ok := other.(*FakeChild)
	if !ok {
		return false
	}
	return f.ChildName == o.ChildName && f.ChildKind == o.ChildKind
}

// Clone implements Child. The clone shares the call log.
func (f *FakeChild) Clone() Child {
	c := *f
	c.Parent = nil
	c.Finalized = 0
	c.Samples = 0
	return &c
}

// Dump implements Child.
func (f *FakeChild) Dump(w io.Writer, indent string) {
	fmt.Fprintf(w, "%s%s %s\n", indent, f.ChildKind, f.ChildName)
}
