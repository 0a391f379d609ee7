package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 25},
		{"default bucket size for negative", -1, 25},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog("cut", 1, 10) {
		t.Error("ShouldLog on nil sampler should return true")
	}
	s.Reset() // should not panic
}

func TestProgressSampler_Buckets(t *testing.T) {
	s := NewProgressSampler(25)

	if !s.ShouldLog("f0", 0, 8) {
		t.Error("first call should log")
	}
	if s.ShouldLog("f0", 1, 8) {
		t.Error("12.5% should stay in bucket 0")
	}
	if !s.ShouldLog("f0", 2, 8) {
		t.Error("25% should log")
	}
	if s.ShouldLog("f0", 3, 8) {
		t.Error("37.5% should not log")
	}
	if !s.ShouldLog("f0", 8, 8) {
		t.Error("completion should log")
	}
	if s.ShouldLog("f0", 9, 8) {
		t.Error("overshoot should not log again")
	}
}

func TestProgressSampler_StageChangeResets(t *testing.T) {
	s := NewProgressSampler(25)
	s.ShouldLog("cut", 4, 4)

	if !s.ShouldLog("  polish  ", 0, 4) {
		t.Error("stage change should log")
	}
	if s.lastStage != "polish" {
		t.Errorf("lastStage = %q, want polish", s.lastStage)
	}
	if s.lastBucket != 0 {
		t.Errorf("lastBucket = %d, want 0 after reset", s.lastBucket)
	}

	s.Reset()
	if s.lastStage != "" || s.lastBucket != -1 {
		t.Errorf("Reset left state %q/%d", s.lastStage, s.lastBucket)
	}
}

func TestProgressSampler_ZeroTotal(t *testing.T) {
	s := NewProgressSampler(25)
	if s.ShouldLog("cut", 0, 0) {
		t.Error("zero total should not log")
	}
}
