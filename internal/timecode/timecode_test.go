package timecode

import (
	"math"
	"testing"
)

func TestToSeconds(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"00:00:00,000", 0, false},
		{"00:05:46,345", 346.345, false},
		{"01:00:00,000", 3600, false},
		{"00:05:46.345", 346.345, false},
		{" 00:05:46,345 ", 346.345, false},
		{"", 0, true},
		{"not a time", 0, true},
		{"00:05:46", 0, true},
	}

	for _, tt := range tests {
		got, err := ToSeconds(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ToSeconds(%q) expected error, got %f", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToSeconds(%q): %v", tt.input, err)
			continue
		}
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("ToSeconds(%q) = %f, want %f", tt.input, got, tt.want)
		}
	}
}

func TestFromSeconds(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "00:00:00,000"},
		{346.345, "00:05:46,345"},
		{3600, "01:00:00,000"},
		{-1, "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := FromSeconds(tt.input); got != tt.want {
			t.Errorf("FromSeconds(%f) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	stamps := []string{
		"00:00:00,000",
		"00:05:46,345",
		"01:23:45,678",
		"12:00:00,001",
	}
	for _, stamp := range stamps {
		sec, err := ToSeconds(stamp)
		if err != nil {
			t.Fatalf("ToSeconds(%q): %v", stamp, err)
		}
		if got := FromSeconds(sec); got != stamp {
			t.Errorf("round trip %q -> %f -> %q", stamp, sec, got)
		}
	}
}
