package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"glottisdale/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GLOTTISDALE_OUTPUT_DIR", "")
	t.Setenv("GLOTTISDALE_SEED", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "glottisdale")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Collage.Seed != nil {
		t.Fatalf("expected no seed by default, got %d", *cfg.Collage.Seed)
	}
	if cfg.Collage.SyllablesPerWord != (config.IntRange{Min: 1, Max: 4}) {
		t.Fatalf("unexpected syllables per word: %s", cfg.Collage.SyllablesPerWord)
	}
	if cfg.Collage.PhrasePauseMS != (config.FloatRange{Min: 400, Max: 700}) {
		t.Fatalf("unexpected phrase pause: %s", cfg.Collage.PhrasePauseMS)
	}
	if cfg.Stretch.Factor != (config.FloatRange{Min: 2, Max: 2}) {
		t.Fatalf("unexpected stretch factor: %s", cfg.Stretch.Factor)
	}
	if cfg.HasSyllableStretch() {
		t.Fatal("expected stretch modes disabled by default")
	}
	if cfg.Processing.Stretcher != config.StretcherNative {
		t.Fatalf("unexpected stretcher: %q", cfg.Processing.Stretcher)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("GLOTTISDALE_OUTPUT_DIR", "")
	t.Setenv("GLOTTISDALE_SEED", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "glottisdale.toml")
	contents := `
[paths]
output_dir = "` + filepath.ToSlash(filepath.Join(tempDir, "out")) + `"

[collage]
seed = 42
target_duration = 6.5
syllables_per_word = "2"
phrase_pause_ms = "100-250"

[stretch]
alternating_every = 2
factor = "1.5-3.0"

[repeat]
probability = 0.25
style = "RESAMPLE"
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Collage.Seed == nil || *cfg.Collage.Seed != 42 {
		t.Fatalf("expected seed 42, got %v", cfg.Collage.Seed)
	}
	if cfg.Collage.TargetDuration != 6.5 {
		t.Fatalf("expected target 6.5, got %v", cfg.Collage.TargetDuration)
	}
	if cfg.Collage.SyllablesPerWord != (config.IntRange{Min: 2, Max: 2}) {
		t.Fatalf("unexpected syllables per word: %s", cfg.Collage.SyllablesPerWord)
	}
	if cfg.Collage.PhrasePauseMS != (config.FloatRange{Min: 100, Max: 250}) {
		t.Fatalf("unexpected phrase pause: %s", cfg.Collage.PhrasePauseMS)
	}
	if cfg.Stretch.Factor != (config.FloatRange{Min: 1.5, Max: 3}) {
		t.Fatalf("unexpected factor: %s", cfg.Stretch.Factor)
	}
	if !cfg.HasSyllableStretch() {
		t.Fatal("expected alternating stretch to be active")
	}
	if cfg.Repeat.Style != config.RepeatResample {
		t.Fatalf("expected style normalized to resample, got %q", cfg.Repeat.Style)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	// Untouched sections keep defaults.
	if cfg.Collage.WordsPerPhrase != (config.IntRange{Min: 3, Max: 5}) {
		t.Fatalf("expected default words per phrase, got %s", cfg.Collage.WordsPerPhrase)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "glottisdale.toml")
	if err := os.WriteFile(configPath, []byte("[collage]\nsyllables_per_clip = \"1-5\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverrides(t *testing.T) {
	outDir := t.TempDir()
	t.Setenv("GLOTTISDALE_OUTPUT_DIR", outDir)
	t.Setenv("GLOTTISDALE_SEED", "7")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != outDir {
		t.Fatalf("expected output dir from env, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Collage.Seed == nil || *cfg.Collage.Seed != 7 {
		t.Fatalf("expected seed 7 from env, got %v", cfg.Collage.Seed)
	}

	t.Setenv("GLOTTISDALE_SEED", "seven")
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for malformed seed")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "syllables_per_word") {
		t.Fatalf("sample config missing collage keys: %s", contents)
	}

	cfg := config.Default()
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
	if cfg.Collage.SentencePauseMS != (config.FloatRange{Min: 800, Max: 1200}) {
		t.Fatalf("unexpected sentence pause from sample: %s", cfg.Collage.SentencePauseMS)
	}
}

func TestApplyGapDoublesSentencePause(t *testing.T) {
	cfg := config.Default()
	cfg.ApplyGap(config.FloatRange{Min: 100, Max: 300})
	if cfg.Collage.PhrasePauseMS != (config.FloatRange{Min: 100, Max: 300}) {
		t.Fatalf("unexpected phrase pause: %s", cfg.Collage.PhrasePauseMS)
	}
	if cfg.Collage.SentencePauseMS != (config.FloatRange{Min: 200, Max: 600}) {
		t.Fatalf("unexpected sentence pause: %s", cfg.Collage.SentencePauseMS)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero target", func(c *config.Config) { c.Collage.TargetDuration = 0 }},
		{"zero words", func(c *config.Config) { c.Collage.WordsPerPhrase = config.IntRange{} }},
		{"negative crossfade", func(c *config.Config) { c.Collage.WordCrossfadeMS = -1 }},
		{"probability above one", func(c *config.Config) { c.Stretch.RandomProbability = 1.5 }},
		{"zero factor", func(c *config.Config) { c.Stretch.Factor = config.FloatRange{} }},
		{"unknown repeat style", func(c *config.Config) { c.Repeat.Style = "shuffle" }},
		{"positive noise", func(c *config.Config) { c.Polish.NoiseLevelDB = 3 }},
		{"unknown stretcher", func(c *config.Config) { c.Processing.Stretcher = "sox" }},
		{"low sample rate", func(c *config.Config) { c.Processing.SampleRate = 4000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
