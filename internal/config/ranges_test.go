package config

import "testing"

func TestParseIntRange(t *testing.T) {
	tests := []struct {
		in      string
		want    IntRange
		wantErr bool
	}{
		{"3", IntRange{3, 3}, false},
		{"1-4", IntRange{1, 4}, false},
		{" 2 - 5 ", IntRange{2, 5}, false},
		{"4-1", IntRange{}, true},
		{"-1", IntRange{}, true},
		{"1-", IntRange{}, true},
		{"", IntRange{}, true},
		{"a-b", IntRange{}, true},
	}
	for _, tt := range tests {
		got, err := ParseIntRange(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseIntRange(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseIntRange(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFloatRange(t *testing.T) {
	tests := []struct {
		in      string
		want    FloatRange
		wantErr bool
	}{
		{"2.0", FloatRange{2, 2}, false},
		{"1.5-3.0", FloatRange{1.5, 3}, false},
		{"400-700", FloatRange{400, 700}, false},
		{"0", FloatRange{0, 0}, false},
		{"3-1", FloatRange{}, true},
		{"-0.5", FloatRange{}, true},
	}
	for _, tt := range tests {
		got, err := ParseFloatRange(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFloatRange(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFloatRange(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFloatRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeStringRoundTrip(t *testing.T) {
	if got := (IntRange{1, 4}).String(); got != "1-4" {
		t.Fatalf("IntRange.String() = %q", got)
	}
	if got := (IntRange{3, 3}).String(); got != "3" {
		t.Fatalf("IntRange.String() = %q", got)
	}
	if got := (FloatRange{1.5, 3}).String(); got != "1.5-3" {
		t.Fatalf("FloatRange.String() = %q", got)
	}
	var r FloatRange
	if err := r.Set("800-1200"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if r != (FloatRange{800, 1200}) {
		t.Fatalf("unexpected range after Set: %v", r)
	}
}
