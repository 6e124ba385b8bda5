package engine

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "integer", in: 8, want: "8"},
		{name: "negative", in: -3.5, want: "-3.5"},
		{name: "negative zero", in: math.Copysign(0, -1), want: "0"},
		{name: "shortest round trip", in: 0.1 + 0.2, want: "0.30000000000000004"},
		{name: "large integer", in: 123456789012, want: "123456789012"},
		{name: "just below exponent range", in: 1e20, want: "100000000000000000000"},
		{name: "large exponent", in: 1e21, want: "1e+21"},
		{name: "small exponent", in: 1.5e-7, want: "1.5e-7"},
		{name: "smallest plain", in: 0.000001, want: "0.000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatNumber(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "42", want: 42, wantOK: true},
		{in: "0.", want: 0, wantOK: true},
		{in: "-7.25", want: -7.25, wantOK: true},
		{in: "1e-7", want: 1e-7, wantOK: true},
		{in: "", wantOK: false},
		{in: "-", wantOK: false},
		{in: ErrorDisplay, wantOK: false},
		{in: "Inf", wantOK: false},
		{in: "0x10", wantOK: false},
		{in: "1e999", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseNumber(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%t, got %t", tc.wantOK, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
