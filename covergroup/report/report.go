// Package report builds coverage reports from covergroup models.
package report

import (
	"fmt"
	"io"

	"github.com/example/covergroup-lite/covergroup/bins"
	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/example/covergroup-lite/covergroup/model"
)

// BinReport is the hit count of one bin or bin combination.
type BinReport struct {
	Name string
	Hits int
}

// ChildReport describes one coverpoint or cross.
type ChildReport struct {
	Name     string
	Kind     domain.ModelKind
	Coverage float64
	Bins     []BinReport
}

// CovergroupReport describes a covergroup and, for types, its instances.
type CovergroupReport struct {
	Name        string
	Typename    string
	InstName    string
	DUName      string
	Coverage    float64
	Goal        float64
	GoalMet     bool
	Coverpoints []ChildReport
	Crosses     []ChildReport
	Instances   []CovergroupReport
}

// Report is the result of visiting one or more covergroups.
type Report struct {
	Covergroups []CovergroupReport
}

// Generator collects a Report as covergroups accept it.
type Generator struct {
	report Report
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// VisitCovergroup implements model.Visitor.
func (g *Generator) VisitCovergroup(cg *model.Covergroup) {
	g.report.Covergroups = append(g.report.Covergroups, buildCovergroup(cg))
}

// Report returns the collected report.
func (g *Generator) Report() Report {
	return g.report
}

// Generate visits each covergroup and returns the report.
func Generate(cgs ...*model.Covergroup) Report {
	g := NewGenerator()
	for _, cg := range cgs {
		cg.Accept(g)
	}
	return g.Report()
}

func buildCovergroup(cg *model.Covergroup) CovergroupReport {
	r := CovergroupReport{
		Name:     cg.Name(),
		Typename: cg.Typename(),
		InstName: cg.InstName(),
		DUName:   cg.DUName(),
		Coverage: cg.Coverage(),
		Goal:     cg.Options().Goal,
		GoalMet:  cg.GoalMet(),
	}
	for _, c := range cg.Coverpoints() {
		r.Coverpoints = append(r.Coverpoints, buildChild(c))
	}
	for _, c := range cg.Crosses() {
		r.Crosses = append(r.Crosses, buildChild(c))
	}
	for _, inst := range cg.Instances() {
		r.Instances = append(r.Instances, buildCovergroup(inst))
	}
	return r
}

func buildChild(c model.Child) ChildReport {
	r := ChildReport{
		Name:     c.Name(),
		Kind:     c.Kind(),
		Coverage: c.Coverage(),
	}

	switch c.Kind() {
	case domain.KindCoverpoint:
		if cp, ok := c.(*bins.Coverpoint); ok {
			for _, b := range cp.Bins() {
				r.Bins = append(r.Bins, BinReport{Name: b.Name, Hits: b.Hits})
			}
		}
	case domain.KindCross:
		if x, ok := c.(*bins.Cross); ok {
			for _, b := range x.Bins() {
				r.Bins = append(r.Bins, BinReport{Name: b.Name, Hits: b.Hits})
			}
		}
	}
	return r
}

// WriteText renders the report as an indented text tree.
func (r Report) WriteText(w io.Writer) error {
	for _, cg := range r.Covergroups {
		if err := writeCovergroup(w, cg, ""); err != nil {
			return err
		}
	}
	return nil
}

func writeCovergroup(w io.Writer, cg CovergroupReport, indent string) error {
	label := "TYPE"
	if cg.InstName != "" {
		label = "INST " + cg.InstName
	}
	status := "open"
	if cg.GoalMet {
		status = "met"
	}
	if _, err := fmt.Fprintf(w, "%s%s %s: %.2f%% (goal %.0f%%, %s)\n",
		indent, label, cg.Name, cg.Coverage, cg.Goal, status); err != nil {
		return err
	}

	for _, group := range [][]ChildReport{cg.Coverpoints, cg.Crosses} {
		for _, c := range group {
			if _, err := fmt.Fprintf(w, "%s  %s %s: %.2f%%\n", indent, c.Kind, c.Name, c.Coverage); err != nil {
				return err
			}
			for _, b := range c.Bins {
				if _, err := fmt.Fprintf(w, "%s    %s: %d\n", indent, b.Name, b.Hits); err != nil {
					return err
				}
			}
		}
	}

	for _, inst := range cg.Instances {
		if err := writeCovergroup(w, inst, indent+"  "); err != nil {
			return err
		}
	}
	return nil
}
