package ui

import (
	"testing"

	"spmon/internal/model"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00B"},
		{1023, "1023.00B"},
		{1536, "1.50KB"},
		{1048576, "1.00MB"},
		{5 * 1024 * 1024 * 1024, "5.00GB"},
		{2199023255552, "2.00TB"},
		{1125899906842624, "1.00PB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.in); got != tt.want {
			t.Errorf("humanBytes(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTempString(t *testing.T) {
	if got := tempString(model.Celsius{Value: 48.55, Valid: true}); got != "48.5" {
		t.Errorf("valid reading: got %q", got)
	}
	if got := tempString(model.Celsius{Value: 0, Valid: true}); got != "0.0" {
		t.Errorf("legitimate zero: got %q", got)
	}
	if got := tempString(model.Celsius{}); got != model.Sentinel {
		t.Errorf("no value: got %q, want sentinel", got)
	}
}
