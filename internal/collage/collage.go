package collage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/config"
	"glottisdale/internal/grouping"
	"glottisdale/internal/logging"
	"glottisdale/internal/manifest"
	"glottisdale/internal/rng"
	"glottisdale/internal/runs"
	"glottisdale/internal/services"
)

// Input-fatal conditions.
var (
	ErrNoSyllables       = grouping.ErrNoSyllables
	ErrTargetUnreachable = grouping.ErrTargetUnreachable
)

// Dependencies are the collaborators a run needs. Decoder may be nil when
// every input is a WAV file and History may be nil to skip recording.
type Dependencies struct {
	Decoder   bank.Decoder
	Stretcher audio.Stretcher
	History   *runs.History
	Logger    *slog.Logger
	Now       func() time.Time
}

// Request describes one collage.
type Request struct {
	Inputs []bank.Input
	// Label replaces the generated adjective-noun part of the run name.
	Label string
}

// Result is a completed run.
type Result struct {
	Run      runs.Run
	Manifest manifest.Manifest
	Record   runs.Record
}

// Engine runs collages with one configuration.
type Engine struct {
	cfg  *config.Config
	deps Dependencies
}

// New returns an Engine. A nil stretcher uses the native primitive.
func New(cfg *config.Config, deps Dependencies) *Engine {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Stretcher == nil {
		deps.Stretcher = audio.NativeStretcher{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Engine{cfg: cfg, deps: deps}
}

// Run executes one collage and writes its artifacts.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Inputs) == 0 {
		return nil, services.Wrap(services.ErrValidation, "collage", "start", "no input files", nil)
	}

	seed := rng.NewSeed()
	if e.cfg.Collage.Seed != nil {
		seed = *e.cfg.Collage.Seed
	}
	started := e.deps.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, e.deps.Logger), "collage")
	logger.Info("collage started",
		logging.Int("inputs", len(req.Inputs)),
		logging.Int64("seed", seed),
		logging.Seconds("target", e.cfg.Collage.TargetDuration),
		logging.Bool("write_clips", e.cfg.Collage.WriteClips),
	)

	workDir, err := os.MkdirTemp("", "glottisdale-")
	if err != nil {
		return nil, fmt.Errorf("collage: work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	loader := bank.NewLoader(e.deps.Decoder, e.cfg.Processing.SampleRate, e.cfg.Processing.AnalysisWorkers, workDir, logger)
	sources, err := loader.Load(services.WithStage(ctx, "load"), req.Inputs)
	if err != nil {
		return nil, err
	}
	b := bank.New(sources)

	out, err := e.render(ctx, b, rng.New(seed), logger)
	if err != nil {
		return nil, err
	}

	result, err := e.write(ctx, req, b, seed, out, logger)
	if err != nil {
		logging.ErrorWithContext(logger, "writing run artifacts failed", "run_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.output_dir permissions and free space"),
		)
		return nil, err
	}
	result.Record.ID = runID
	if e.deps.History != nil {
		rec, err := e.deps.History.Add(ctx, result.Record)
		if err != nil {
			logging.WarnWithContext(logger, "run history not recorded", "history_write_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "run missing from `glottisdale runs list`"),
				logging.String(logging.FieldErrorHint, "check paths.state_dir permissions"),
			)
		} else {
			result.Record = rec
		}
	}

	logger.Info("collage complete",
		logging.String("run", result.Run.Name),
		logging.String("dir", result.Run.Dir),
		logging.Int("clips", len(result.Manifest.Clips)),
		logging.Seconds("duration", result.Manifest.Duration),
		logging.Duration("elapsed", e.deps.Now().Sub(started)),
	)
	return result, nil
}
