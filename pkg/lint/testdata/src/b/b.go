// Package b exercises package resolution in the covergroup linter.
package b

import (
	cgbins "bins"
	cg "model"
	"other/model"
)

func aliased() {
	_ = cg.New("")              // want "model.New called with empty name"
	_ = cgbins.NewCoverpoint("") // want "bins.NewCoverpoint called with empty name"
}

func unrelated() {
	_ = model.New("")
}
