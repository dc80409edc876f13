package domain

import (
	"errors"
	"testing"
)

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{AtLeast: 3}.WithDefaults()

	if o.Goal != 100 {
		t.Errorf("Goal = %v, want 100", o.Goal)
	}
	if o.Weight != 1 {
		t.Errorf("Weight = %d, want 1", o.Weight)
	}
	if o.AtLeast != 3 {
		t.Errorf("AtLeast = %d, want 3", o.AtLeast)
	}
	if o.DumpIndent != "    " {
		t.Errorf("DumpIndent = %q, want four spaces", o.DumpIndent)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"goal zero", Options{Goal: 0, AtLeast: 1}, true},
		{"goal above 100", Options{Goal: 101, AtLeast: 1}, true},
		{"negative weight", Options{Goal: 50, Weight: -1, AtLeast: 1}, true},
		{"zero weight", Options{Goal: 50, Weight: 0, AtLeast: 1}, true},
		{"zero weight with defaults", Options{Goal: 50}.WithDefaults(), false},
		{"zero at_least", Options{Goal: 50, AtLeast: 0}, true},
		{"partial goal", Options{Goal: 80, Weight: 2, AtLeast: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestModelKindString(t *testing.T) {
	tests := map[ModelKind]string{
		KindCoverpoint: "coverpoint",
		KindCross:      "cross",
		KindUnknown:    "unknown",
		ModelKind(42):  "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("ModelKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
