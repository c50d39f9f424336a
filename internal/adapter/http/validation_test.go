package http

import (
	"errors"
	"testing"
)

type hex32Probe struct {
	ID string `validate:"required,hex32"`
}

func TestHex32Tag(t *testing.T) {
	cv := NewValidator()

	cases := []struct {
		name  string
		id    string
		valid bool
	}{
		{"lowercase hex", "0f52983d68b8404a90d1e6310b5c9f00", true},
		{"too short", "0f52983d", false},
		{"too long", "0f52983d68b8404a90d1e6310b5c9f00aa", false},
		{"uppercase", "0F52983D68B8404A90D1E6310B5C9F00", false},
		{"non-hex chars", "zzzz983d68b8404a90d1e6310b5c9f00", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cv.Validate(&hex32Probe{ID: tc.id})
			if tc.valid && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tc.id, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tc.id)
			}
		})
	}
}

type dec2Probe struct {
	Amount float64 `validate:"dec2"`
}

func TestDec2Tag(t *testing.T) {
	cv := NewValidator()

	cases := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"whole", 75000, true},
		{"two decimals", 75000.25, true},
		{"one decimal", 0.5, true},
		{"three decimals", 100.999, false},
		{"zero", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cv.Validate(&dec2Probe{Amount: tc.amount})
			if tc.valid && err != nil {
				t.Errorf("Validate(%v) = %v, want nil", tc.amount, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Validate(%v) = nil, want error", tc.amount)
			}
		})
	}
}

func TestToFieldErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&hex32Probe{ID: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	out := ToFieldErrors(err)
	if !containsFieldMsg(out, "ID", "hex") {
		t.Errorf("missing hex32 message: %+v", out)
	}

	// non-validator errors collapse into a single catch-all entry
	out = ToFieldErrors(errors.New("boom"))
	if len(out) != 1 || out[0].Field != "_" {
		t.Errorf("unexpected mapping for plain error: %+v", out)
	}
}
