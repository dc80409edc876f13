package domain

import "fmt"

// Options holds per-model coverage options.
// None of these change how a covergroup averages its children.
type Options struct {
	// Goal is the coverage percentage (0-100] a covergroup must reach to be
	// considered closed.
	// Default: 100
	Goal float64

	// Weight is the relative weight reported alongside the model. Zero
	// selects the default; explicit values must be at least 1.
	// Default: 1
	Weight int

	// AtLeast is the number of hits a bin needs before it counts as covered.
	// Default: 1
	AtLeast int

	// DumpIndent is appended to the indentation for each level of Dump output.
	// Default: four spaces
	DumpIndent string
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Goal:       100,
		Weight:     1,
		AtLeast:    1,
		DumpIndent: "    ",
	}
}

// Validate checks that the options are valid.
func (o *Options) Validate() error {
	if o.Goal <= 0 || o.Goal > 100 {
		return fmt.Errorf("%w: Goal must be in (0, 100], got %f",
			ErrInvalidConfig, o.Goal)
	}
	if o.Weight < 1 {
		return fmt.Errorf("%w: Weight must be at least 1, got %d",
			ErrInvalidConfig, o.Weight)
	}
	if o.AtLeast < 1 {
		return fmt.Errorf("%w: AtLeast must be at least 1, got %d",
			ErrInvalidConfig, o.AtLeast)
	}
	return nil
}

// WithDefaults returns new options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.Goal == 0 {
		o.Goal = defaults.Goal
	}
	if o.Weight == 0 {
		o.Weight = defaults.Weight
	}
	if o.AtLeast == 0 {
		o.AtLeast = defaults.AtLeast
	}
	if o.DumpIndent == "" {
		o.DumpIndent = defaults.DumpIndent
	}
	return o
}
