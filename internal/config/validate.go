package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCollage(); err != nil {
		return err
	}
	if err := c.validateStretch(); err != nil {
		return err
	}
	if err := c.validateStutterRepeat(); err != nil {
		return err
	}
	if err := c.validatePolish(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCollage() error {
	if c.Collage.TargetDuration <= 0 {
		return errors.New("collage.target_duration must be positive")
	}
	sizes := []struct {
		name  string
		value IntRange
	}{
		{"collage.syllables_per_word", c.Collage.SyllablesPerWord},
		{"collage.words_per_phrase", c.Collage.WordsPerPhrase},
		{"collage.phrases_per_sentence", c.Collage.PhrasesPerSentence},
	}
	for _, size := range sizes {
		if size.value.Min < 1 || size.value.Max < size.value.Min {
			return fmt.Errorf("%s must be a range of positive counts, got %s", size.name, size.value)
		}
	}
	if c.Collage.PaddingMS < 0 || c.Collage.FadeMS < 0 {
		return errors.New("collage.padding_ms and collage.fade_ms must not be negative")
	}
	if c.Collage.SyllableCrossfadeMS < 0 || c.Collage.WordCrossfadeMS < 0 {
		return errors.New("collage crossfades must not be negative")
	}
	if err := validateFloatRange("collage.phrase_pause_ms", c.Collage.PhrasePauseMS); err != nil {
		return err
	}
	return validateFloatRange("collage.sentence_pause_ms", c.Collage.SentencePauseMS)
}

func (c *Config) validateStretch() error {
	if err := validateProbability("stretch.random_probability", c.Stretch.RandomProbability); err != nil {
		return err
	}
	if err := validateProbability("stretch.word_probability", c.Stretch.WordProbability); err != nil {
		return err
	}
	if c.Stretch.AlternatingEvery < 0 || c.Stretch.BoundaryCount < 0 {
		return errors.New("stretch.alternating_every and stretch.boundary_count must not be negative")
	}
	if c.Stretch.Speed < 0 {
		return errors.New("stretch.speed must not be negative")
	}
	if c.Stretch.Factor.Min <= 0 || c.Stretch.Factor.Max < c.Stretch.Factor.Min {
		return fmt.Errorf("stretch.factor must be a positive range, got %s", c.Stretch.Factor)
	}
	return nil
}

func (c *Config) validateStutterRepeat() error {
	if err := validateProbability("stutter.probability", c.Stutter.Probability); err != nil {
		return err
	}
	if err := validateProbability("repeat.probability", c.Repeat.Probability); err != nil {
		return err
	}
	if c.Stutter.Count.Min < 1 || c.Repeat.Count.Min < 1 {
		return errors.New("stutter.count and repeat.count must be at least 1")
	}
	switch c.Repeat.Style {
	case RepeatExact, RepeatResample:
	default:
		return fmt.Errorf("repeat.style must be %q or %q, got %q", RepeatExact, RepeatResample, c.Repeat.Style)
	}
	return nil
}

func (c *Config) validatePolish() error {
	if c.Polish.NoiseLevelDB > 0 {
		return errors.New("polish.noise_level_db must be zero (disabled) or negative")
	}
	if c.Polish.PitchRange < 0 {
		return errors.New("polish.pitch_range must not be negative")
	}
	return validateProbability("polish.breath_probability", c.Polish.BreathProbability)
}

func (c *Config) validateProcessing() error {
	switch c.Processing.Stretcher {
	case StretcherNative, StretcherFFmpeg:
	default:
		return fmt.Errorf("processing.stretcher must be %q or %q, got %q", StretcherNative, StretcherFFmpeg, c.Processing.Stretcher)
	}
	if c.Processing.SampleRate < 8000 {
		return fmt.Errorf("processing.sample_rate must be at least 8000, got %d", c.Processing.SampleRate)
	}
	return nil
}

func validateProbability(name string, value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

func validateFloatRange(name string, r FloatRange) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s must be a non-negative range, got %s", name, r)
	}
	return nil
}
