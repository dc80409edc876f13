// Command cglint runs static analysis on covergroup API usage.
//
// Usage:
//
//	cglint ./...
//
// This tool detects common mistakes when building covergroup models:
//   - Empty names passed to model.New, bins.NewCoverpoint and bins.NewCross
//   - Discarded errors from AddCoverpoint, Finalize, Sample and SetTarget
package main

import (
	"github.com/example/covergroup-lite/pkg/lint"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
