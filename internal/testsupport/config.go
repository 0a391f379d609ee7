package testsupport

import (
	"path/filepath"
	"testing"

	"glottisdale/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config with output and state directories under
// a per-test temp directory. A fixed seed keeps runs reproducible.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	seed := int64(42)
	cfg.Collage.Seed = &seed
	cfg.Collage.TargetDuration = 3
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Processing.AnalysisWorkers = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithSeed overrides the run seed.
func WithSeed(seed int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Collage.Seed = &seed
	}
}

// WithTargetDuration overrides the target duration in seconds.
func WithTargetDuration(seconds float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Collage.TargetDuration = seconds
	}
}
