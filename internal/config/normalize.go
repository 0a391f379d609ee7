package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCollage(); err != nil {
		return err
	}
	c.normalizeRepeat()
	c.normalizeProcessing()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("GLOTTISDALE_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCollage() error {
	if c.Collage.Seed == nil {
		if value, ok := os.LookupEnv("GLOTTISDALE_SEED"); ok && strings.TrimSpace(value) != "" {
			seed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return fmt.Errorf("GLOTTISDALE_SEED: %w", err)
			}
			c.Collage.Seed = &seed
		}
	}
	if c.Collage.OrderingAttempts <= 0 {
		c.Collage.OrderingAttempts = defaultOrderingAttempts
	}
	return nil
}

func (c *Config) normalizeRepeat() {
	c.Repeat.Style = strings.ToLower(strings.TrimSpace(c.Repeat.Style))
	if c.Repeat.Style == "" {
		c.Repeat.Style = RepeatExact
	}
}

func (c *Config) normalizeProcessing() {
	c.Processing.Stretcher = strings.ToLower(strings.TrimSpace(c.Processing.Stretcher))
	if c.Processing.Stretcher == "" {
		c.Processing.Stretcher = defaultStretcher
	}
	c.Processing.FFmpegBinary = strings.TrimSpace(c.Processing.FFmpegBinary)
	if c.Processing.FFmpegBinary == "" {
		c.Processing.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Processing.SampleRate <= 0 {
		c.Processing.SampleRate = defaultSampleRate
	}
	if c.Processing.ToolTimeoutSeconds <= 0 {
		c.Processing.ToolTimeoutSeconds = defaultToolTimeoutSeconds
	}
	if c.Processing.AnalysisWorkers <= 0 {
		c.Processing.AnalysisWorkers = defaultAnalysisWorkers
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
