package model

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"

	"github.com/example/covergroup-lite/covergroup/domain"
)

func mustAdd(t *testing.T, cg *Covergroup, c Child) {
	t.Helper()
	if _, err := cg.AddCoverpoint(c); err != nil {
		t.Fatalf("AddCoverpoint(%s) failed: %v", c.Name(), err)
	}
}

func TestCoverageVacuous(t *testing.T) {
	cg := New("empty")
	if got := cg.Coverage(); got != 100.0 {
		t.Errorf("Coverage() = %v, want 100", got)
	}
}

func TestCoverageMean(t *testing.T) {
	tests := []struct {
		name    string
		points  []float64
		crosses []float64
		want    float64
	}{
		{"two coverpoints", []float64{50, 100}, nil, 75},
		{"single uncovered", []float64{0}, nil, 0},
		{"coverpoints and cross", []float64{10, 20}, []float64{30}, 20},
		{"only crosses", nil, []float64{25, 75}, 50},
		{"out of range child propagates", []float64{150, 50}, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cg := New("cg")
			for i, c := range tt.points {
				mustAdd(t, cg, NewFakeCoverpoint(string(rune('a'+i)), c, nil))
			}
			for i, c := range tt.crosses {
				mustAdd(t, cg, NewFakeCross(string(rune('x'+i)), c, nil))
			}
			if got := cg.Coverage(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Coverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstCoverageIsPlaceholder(t *testing.T) {
	cg := New("cg")
	mustAdd(t, cg, NewFakeCoverpoint("a", 80, nil))
	if got := cg.InstCoverage(); got != 0.0 {
		t.Errorf("InstCoverage() = %v, want 0", got)
	}
}

func TestGoalMet(t *testing.T) {
	cg := New("cg", WithOptions(domain.Options{Goal: 70}))
	mustAdd(t, cg, NewFakeCoverpoint("a", 50, nil))
	mustAdd(t, cg, NewFakeCoverpoint("b", 100, nil))

	if !cg.GoalMet() {
		t.Errorf("GoalMet() = false with coverage %v and goal 70", cg.Coverage())
	}
	if err := cg.SetOptions(domain.Options{Goal: 80}); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}
	if cg.GoalMet() {
		t.Errorf("GoalMet() = true with coverage %v and goal 80", cg.Coverage())
	}
}

func TestSetOptionsInvalid(t *testing.T) {
	cg := New("cg")
	err := cg.SetOptions(domain.Options{Goal: 120})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("SetOptions error = %v, want ErrInvalidConfig", err)
	}
	if cg.Options().Goal != 100 {
		t.Errorf("Goal = %v after rejected SetOptions, want 100", cg.Options().Goal)
	}
}

func TestWithOptionsInvalidKeepsDefaults(t *testing.T) {
	var logged []string
	log := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})

	cg := New("cg", WithLogger(log), WithOptions(domain.Options{Goal: 500}))
	if got := cg.Options(); got != domain.DefaultOptions() {
		t.Errorf("Options() = %+v, want defaults %+v", got, domain.DefaultOptions())
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "ignoring invalid covergroup options") {
		t.Errorf("logged = %q, want one invalid-options error", logged)
	}
}

func TestAddCoverpointKindDispatch(t *testing.T) {
	cg := New("cg")
	cp := NewFakeCoverpoint("a", 0, nil)
	cr := NewFakeCross("x", 0, nil)

	got, err := cg.AddCoverpoint(cp)
	if err != nil {
		t.Fatalf("AddCoverpoint(coverpoint) failed: %v", err)
	}
	if got != Child(cp) {
		t.Errorf("AddCoverpoint returned %v, want the same child", got)
	}
	mustAdd(t, cg, cr)

	if n := len(cg.Coverpoints()); n != 1 || cg.Coverpoints()[0] != Child(cp) {
		t.Errorf("Coverpoints() = %v, want [a]", cg.Coverpoints())
	}
	if n := len(cg.Crosses()); n != 1 || cg.Crosses()[0] != Child(cr) {
		t.Errorf("Crosses() = %v, want [x]", cg.Crosses())
	}
	if cp.Parent != cg || cr.Parent != cg {
		t.Error("AddCoverpoint did not set the parent")
	}
}

func TestAddCoverpointUnsupportedKind(t *testing.T) {
	cg := New("cg")
	bad := &FakeChild{ChildName: "weird", ChildKind: domain.KindUnknown}

	_, err := cg.AddCoverpoint(bad)
	if !errors.Is(err, domain.ErrUnsupportedModelKind) {
		t.Fatalf("AddCoverpoint error = %v, want ErrUnsupportedModelKind", err)
	}
	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("error %q does not name the offending kind", err)
	}
	if len(cg.Coverpoints())+len(cg.Crosses()) != 0 {
		t.Error("unsupported child was registered")
	}

	if _, err := cg.AddCoverpoint(nil); !errors.Is(err, domain.ErrUnsupportedModelKind) {
		t.Errorf("AddCoverpoint(nil) error = %v, want ErrUnsupportedModelKind", err)
	}
}

func TestFinalizeOrder(t *testing.T) {
	log := &CallLog{}
	cg := New("cg")
	mustAdd(t, cg, NewFakeCross("x", 0, log))
	mustAdd(t, cg, NewFakeCoverpoint("a", 0, log))
	mustAdd(t, cg, NewFakeCoverpoint("b", 0, log))

	if err := cg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	want := []string{"finalize:a", "finalize:b", "finalize:x"}
	if strings.Join(log.Calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", log.Calls, want)
	}
}

func TestFinalizeError(t *testing.T) {
	boom := errors.New("bad layout")
	cg := New("cg")
	cp := NewFakeCoverpoint("a", 0, nil)
	cp.FinalizeErr = boom
	cr := NewFakeCross("x", 0, nil)
	mustAdd(t, cg, cp)
	mustAdd(t, cg, cr)

	if err := cg.Finalize(); err != boom {
		t.Errorf("Finalize error = %v, want %v", err, boom)
	}
	if cr.Finalized != 0 {
		t.Error("cross finalized after coverpoint failure")
	}
}

func TestSampleOrderCoverpointsBeforeCrosses(t *testing.T) {
	log := &CallLog{}
	cg := New("cg")
	mustAdd(t, cg, NewFakeCross("x", 0, log))
	mustAdd(t, cg, NewFakeCoverpoint("a", 0, log))
	mustAdd(t, cg, NewFakeCross("y", 0, log))
	mustAdd(t, cg, NewFakeCoverpoint("b", 0, log))

	if err := cg.Sample(); err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	want := "sample:a,sample:b,sample:x,sample:y"
	if got := strings.Join(log.Calls, ","); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
}

func TestSampleErrorAborts(t *testing.T) {
	boom := errors.New("expression failed")
	typ := New("T")
	mustAdd(t, typ, NewFakeCoverpoint("a", 0, nil))
	mustAdd(t, typ, NewFakeCoverpoint("b", 0, nil))
	mustAdd(t, typ, NewFakeCross("x", 0, nil))

	inst, err := NewInstance(typ, "top.u0")
	if err != nil {
		t.Fatalf("NewInstance failed: %v", err)
	}
	cps := inst.Coverpoints()
	cps[1].(*FakeChild).SampleErr = boom

	if err := inst.Sample(); err != boom {
		t.Fatalf("Sample error = %v, want %v", err, boom)
	}
	if cps[0].(*FakeChild).Samples != 1 {
		t.Error("coverpoint before the failure was not sampled")
	}
	if inst.Crosses()[0].(*FakeChild).Samples != 0 {
		t.Error("cross sampled after coverpoint failure")
	}
	if typ.Coverpoints()[0].(*FakeChild).Samples != 0 {
		t.Error("type sampled after instance failure")
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	cg := New("cg", WithOutput(&buf))
	mustAdd(t, cg, NewFakeCross("x", 0, nil))
	mustAdd(t, cg, NewFakeCoverpoint("a", 0, nil))

	cg.Dump("")

	want := "Covergroup cg\n    coverpoint a\n    cross x\n"
	if buf.String() != want {
		t.Errorf("Dump() wrote %q, want %q", buf.String(), want)
	}

	buf.Reset()
	cg.Dump("  ")
	if !strings.HasPrefix(buf.String(), "  Covergroup cg\n      coverpoint a\n") {
		t.Errorf("Dump(indent) wrote %q", buf.String())
	}
}

type recordingVisitor struct {
	visited []string
}

func (v *recordingVisitor) VisitCovergroup(cg *Covergroup) {
	v.visited = append(v.visited, cg.Name())
}

func TestAccept(t *testing.T) {
	v := &recordingVisitor{}
	New("a").Accept(v)
	New("b").Accept(v)

	if strings.Join(v.visited, ",") != "a,b" {
		t.Errorf("visited = %v, want [a b]", v.visited)
	}
}

func TestCoverpointByName(t *testing.T) {
	cg := New("cg")
	mustAdd(t, cg, NewFakeCoverpoint("a", 0, nil))
	mustAdd(t, cg, NewFakeCross("x", 0, nil))

	if c, ok := cg.CoverpointByName("a"); !ok || c.Name() != "a" {
		t.Errorf("CoverpointByName(a) = %v, %v", c, ok)
	}
	if _, ok := cg.CoverpointByName("x"); ok {
		t.Error("CoverpointByName found a cross")
	}
}
