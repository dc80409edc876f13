// Package a is a test package for the covergroup linter.
package a

import (
	"bins"
	"model"
)

type sampler struct{}

// Sample has no error result.
func (sampler) Sample() {}

func emptyNames() {
	_ = model.New("")          // want "model.New called with empty name"
	_ = bins.NewCoverpoint("") // want "bins.NewCoverpoint called with empty name"
	_ = bins.NewCross(``, "a") // want "bins.NewCross called with empty name"
}

func discarded(cg *model.Covergroup, cp *bins.Coverpoint) {
	cg.AddCoverpoint(cp) // want "error returned by AddCoverpoint is discarded"
	cg.Finalize()        // want "error returned by Finalize is discarded"
	cg.Sample()          // want "error returned by Sample is discarded"
	cp.Sample()          // want "error returned by Sample is discarded"

	bins.SetTarget(cg, "len", nil) // want "error returned by SetTarget is discarded"
}

// Valid cases - should NOT produce warnings

func valid(cg *model.Covergroup, s sampler) error {
	_ = model.New("alu_cg")
	if _, err := cg.AddCoverpoint(bins.NewCoverpoint("op")); err != nil {
		return err
	}
	if err := cg.Finalize(); err != nil {
		return err
	}
	_ = cg.Sample()
	s.Sample()
	cg.Dump("")
	return cg.Sample()
}
