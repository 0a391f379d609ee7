package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and state directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir" json:"output_dir"`
	StateDir  string `toml:"state_dir" json:"state_dir"`
}

// Collage contains the selection, grouping, and junction settings.
type Collage struct {
	// Seed fixes the random stream. When unset a seed is derived at run time
	// and recorded in the manifest.
	Seed                *int64     `toml:"seed" json:"seed"`
	TargetDuration      float64    `toml:"target_duration" json:"target_duration"`
	SyllablesPerWord    IntRange   `toml:"syllables_per_word" json:"syllables_per_word"`
	WordsPerPhrase      IntRange   `toml:"words_per_phrase" json:"words_per_phrase"`
	PhrasesPerSentence  IntRange   `toml:"phrases_per_sentence" json:"phrases_per_sentence"`
	PaddingMS           float64    `toml:"padding_ms" json:"padding_ms"`
	FadeMS              float64    `toml:"fade_ms" json:"fade_ms"`
	SyllableCrossfadeMS float64    `toml:"syllable_crossfade_ms" json:"syllable_crossfade_ms"`
	WordCrossfadeMS     float64    `toml:"word_crossfade_ms" json:"word_crossfade_ms"`
	PhrasePauseMS       FloatRange `toml:"phrase_pause_ms" json:"phrase_pause_ms"`
	SentencePauseMS     FloatRange `toml:"sentence_pause_ms" json:"sentence_pause_ms"`
	OrderingAttempts    int        `toml:"ordering_attempts" json:"ordering_attempts"`
	WriteClips          bool       `toml:"write_clips" json:"write_clips"`
}

// Stretch contains the time-stretch selection modes. A zero probability or
// count disables the corresponding mode.
type Stretch struct {
	RandomProbability float64    `toml:"random_probability" json:"random_probability"`
	AlternatingEvery  int        `toml:"alternating_every" json:"alternating_every"`
	BoundaryCount     int        `toml:"boundary_count" json:"boundary_count"`
	WordProbability   float64    `toml:"word_probability" json:"word_probability"`
	Speed             float64    `toml:"speed" json:"speed"`
	Factor            FloatRange `toml:"factor" json:"factor"`
}

// Stutter contains syllable stutter settings.
type Stutter struct {
	Probability float64  `toml:"probability" json:"probability"`
	Count       IntRange `toml:"count" json:"count"`
}

// Repeat contains word repetition settings.
type Repeat struct {
	Probability float64  `toml:"probability" json:"probability"`
	Count       IntRange `toml:"count" json:"count"`
	Style       string   `toml:"style" json:"style"`
}

// Polish contains the audio polish toggles.
type Polish struct {
	NoiseLevelDB      float64 `toml:"noise_level_db" json:"noise_level_db"`
	RoomTone          bool    `toml:"room_tone" json:"room_tone"`
	PitchNormalize    bool    `toml:"pitch_normalize" json:"pitch_normalize"`
	PitchRange        float64 `toml:"pitch_range" json:"pitch_range"`
	Breaths           bool    `toml:"breaths" json:"breaths"`
	BreathProbability float64 `toml:"breath_probability" json:"breath_probability"`
	VolumeNormalize   bool    `toml:"volume_normalize" json:"volume_normalize"`
	ProsodicDynamics  bool    `toml:"prosodic_dynamics" json:"prosodic_dynamics"`
}

// Processing contains runtime settings for decoding and the stretch primitive.
type Processing struct {
	SampleRate         int    `toml:"sample_rate" json:"sample_rate"`
	Stretcher          string `toml:"stretcher" json:"stretcher"`
	FFmpegBinary       string `toml:"ffmpeg_binary" json:"ffmpeg_binary"`
	ToolTimeoutSeconds int    `toml:"tool_timeout_seconds" json:"tool_timeout_seconds"`
	AnalysisWorkers    int    `toml:"analysis_workers" json:"analysis_workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
	Dir    string `toml:"dir" json:"dir"`
}

// Config encapsulates all configuration values for glottisdale.
//
// Configuration sections by subsystem:
//   - Paths: run output root and state (history database) directory
//   - Collage: target duration, hierarchy sizes, crossfades and pauses
//   - Stretch: the five stretch selection modes and the factor range
//   - Stutter, Repeat: syllable stutter and word repetition
//   - Polish: normalization, room tone, breaths, noise bed, dynamics
//   - Processing: sample rate, stretch primitive, ffmpeg, analysis workers
//   - Logging: log format, level, and optional file directory
type Config struct {
	Paths      Paths      `toml:"paths" json:"paths"`
	Collage    Collage    `toml:"collage" json:"collage"`
	Stretch    Stretch    `toml:"stretch" json:"stretch"`
	Stutter    Stutter    `toml:"stutter" json:"stutter"`
	Repeat     Repeat     `toml:"repeat" json:"repeat"`
	Polish     Polish     `toml:"polish" json:"polish"`
	Processing Processing `toml:"processing" json:"processing"`
	Logging    Logging    `toml:"logging" json:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("glottisdale.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output root and state directory.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// HasSyllableStretch reports whether any per-syllable stretch mode is active.
func (c *Config) HasSyllableStretch() bool {
	return c.Stretch.RandomProbability > 0 || c.Stretch.AlternatingEvery > 0 || c.Stretch.BoundaryCount > 0
}

// ApplyGap sets the phrase pause to the supplied range and the sentence pause
// to twice that range.
func (c *Config) ApplyGap(gap FloatRange) {
	c.Collage.PhrasePauseMS = gap
	c.Collage.SentencePauseMS = FloatRange{Min: gap.Min * 2, Max: gap.Max * 2}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
