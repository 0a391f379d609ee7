package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/collage"
	"glottisdale/internal/config"
	"glottisdale/internal/deps"
	"glottisdale/internal/logging"
	"glottisdale/internal/runs"
	"glottisdale/internal/services"
	"glottisdale/internal/services/ffmpeg"
)

// collageFlags holds command-line overrides. Only flags the user set are
// applied on top of the loaded configuration.
type collageFlags struct {
	alignments []string
	runName    string
	outputDir  string
	noClips    bool

	seed               int64
	targetDuration     float64
	syllablesPerWord   config.IntRange
	wordsPerPhrase     config.IntRange
	phrasesPerSentence config.IntRange
	crossfade          float64
	wordCrossfade      float64
	padding            float64
	gap                config.FloatRange

	speed              float64
	stretchFactor      config.FloatRange
	randomStretch      float64
	alternatingStretch int
	boundaryStretch    int
	wordStretch        float64

	stutter      float64
	stutterCount config.IntRange
	repeatWeight float64
	repeatCount  config.IntRange
	repeatStyle  string

	noiseLevel         float64
	noRoomTone         bool
	noPitchNormalize   bool
	pitchRange         float64
	noBreaths          bool
	breathProbability  float64
	noVolumeNormalize  bool
	noProsodicDynamics bool
	stretcher          string
}

func (f *collageFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.alignments, "alignment", nil, "Alignment sidecar per input, in input order (default <stem>.alignment.json)")
	fs.StringVar(&f.runName, "run-name", "", "Replace the generated adjective-noun part of the run name")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "Output root directory")
	fs.BoolVar(&f.noClips, "no-clips", false, "Skip writing per-word clips and clips.zip")

	fs.Int64Var(&f.seed, "seed", 0, "Random seed (default: random, recorded in the manifest)")
	fs.Float64Var(&f.targetDuration, "target-duration", 0, "Target output duration in seconds")
	fs.Var(&f.syllablesPerWord, "syllables-per-word", "Syllables per word, N or MIN-MAX")
	fs.Var(&f.wordsPerPhrase, "words-per-phrase", "Words per phrase, N or MIN-MAX")
	fs.Var(&f.phrasesPerSentence, "phrases-per-sentence", "Phrases per sentence, N or MIN-MAX")
	fs.Float64Var(&f.crossfade, "crossfade", 0, "Syllable crossfade in ms; also sets the word crossfade unless --word-crossfade is given")
	fs.Float64Var(&f.wordCrossfade, "word-crossfade", 0, "Word crossfade in ms")
	fs.Float64Var(&f.padding, "padding", 0, "Padding around each syllable cut in ms")
	fs.Var(&f.gap, "gap", "Phrase pause in ms, N or MIN-MAX; sentence pauses are doubled (0 disables)")

	fs.Float64Var(&f.speed, "speed", 0, "Global speed factor applied to the final mix")
	fs.Var(&f.stretchFactor, "stretch-factor", "Time-stretch factor, N or MIN-MAX")
	fs.Float64Var(&f.randomStretch, "random-stretch", 0, "Probability of stretching any syllable")
	fs.IntVar(&f.alternatingStretch, "alternating-stretch", 0, "Stretch every Nth syllable")
	fs.IntVar(&f.boundaryStretch, "boundary-stretch", 0, "Stretch N syllables at each word boundary")
	fs.Float64Var(&f.wordStretch, "word-stretch", 0, "Probability of stretching a whole word")

	fs.Float64Var(&f.stutter, "stutter", 0, "Probability of stuttering a syllable")
	fs.Var(&f.stutterCount, "stutter-count", "Stutter repetitions, N or MIN-MAX")
	fs.Float64Var(&f.repeatWeight, "repeat-weight", 0, "Probability of repeating a word")
	fs.Var(&f.repeatCount, "repeat-count", "Word repetitions, N or MIN-MAX")
	fs.StringVar(&f.repeatStyle, "repeat-style", "", "Word repeat style: exact or resample")

	fs.Float64Var(&f.noiseLevel, "noise-level", 0, "Pink noise bed level in dB (0 disables)")
	fs.BoolVar(&f.noRoomTone, "no-room-tone", false, "Fill gaps with plain silence")
	fs.BoolVar(&f.noPitchNormalize, "no-pitch-normalize", false, "Skip pitch normalization")
	fs.Float64Var(&f.pitchRange, "pitch-range", 0, "Maximum pitch correction in semitones")
	fs.BoolVar(&f.noBreaths, "no-breaths", false, "Do not insert breaths at phrase gaps")
	fs.Float64Var(&f.breathProbability, "breath-probability", 0, "Probability of a breath at each phrase gap")
	fs.BoolVar(&f.noVolumeNormalize, "no-volume-normalize", false, "Skip volume normalization")
	fs.BoolVar(&f.noProsodicDynamics, "no-prosodic-dynamics", false, "Skip the phrase gain envelope")
	fs.StringVar(&f.stretcher, "stretcher", "", "Stretch primitive: native or ffmpeg")
}

// apply copies every flag the user set onto cfg.
func (f *collageFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("output-dir", func() { cfg.Paths.OutputDir = f.outputDir })
	set("no-clips", func() { cfg.Collage.WriteClips = !f.noClips })
	set("seed", func() { cfg.Collage.Seed = &f.seed })
	set("target-duration", func() { cfg.Collage.TargetDuration = f.targetDuration })
	set("syllables-per-word", func() { cfg.Collage.SyllablesPerWord = f.syllablesPerWord })
	set("words-per-phrase", func() { cfg.Collage.WordsPerPhrase = f.wordsPerPhrase })
	set("phrases-per-sentence", func() { cfg.Collage.PhrasesPerSentence = f.phrasesPerSentence })
	set("crossfade", func() {
		cfg.Collage.SyllableCrossfadeMS = f.crossfade
		if !fs.Changed("word-crossfade") {
			cfg.Collage.WordCrossfadeMS = f.crossfade
		}
	})
	set("word-crossfade", func() { cfg.Collage.WordCrossfadeMS = f.wordCrossfade })
	set("padding", func() { cfg.Collage.PaddingMS = f.padding })
	set("gap", func() { cfg.ApplyGap(f.gap) })

	set("speed", func() { cfg.Stretch.Speed = f.speed })
	set("stretch-factor", func() { cfg.Stretch.Factor = f.stretchFactor })
	set("random-stretch", func() { cfg.Stretch.RandomProbability = f.randomStretch })
	set("alternating-stretch", func() { cfg.Stretch.AlternatingEvery = f.alternatingStretch })
	set("boundary-stretch", func() { cfg.Stretch.BoundaryCount = f.boundaryStretch })
	set("word-stretch", func() { cfg.Stretch.WordProbability = f.wordStretch })

	set("stutter", func() { cfg.Stutter.Probability = f.stutter })
	set("stutter-count", func() { cfg.Stutter.Count = f.stutterCount })
	set("repeat-weight", func() { cfg.Repeat.Probability = f.repeatWeight })
	set("repeat-count", func() { cfg.Repeat.Count = f.repeatCount })
	set("repeat-style", func() { cfg.Repeat.Style = strings.ToLower(strings.TrimSpace(f.repeatStyle)) })

	set("noise-level", func() { cfg.Polish.NoiseLevelDB = f.noiseLevel })
	set("no-room-tone", func() { cfg.Polish.RoomTone = !f.noRoomTone })
	set("no-pitch-normalize", func() { cfg.Polish.PitchNormalize = !f.noPitchNormalize })
	set("pitch-range", func() { cfg.Polish.PitchRange = f.pitchRange })
	set("no-breaths", func() { cfg.Polish.Breaths = !f.noBreaths })
	set("breath-probability", func() { cfg.Polish.BreathProbability = f.breathProbability })
	set("no-volume-normalize", func() { cfg.Polish.VolumeNormalize = !f.noVolumeNormalize })
	set("no-prosodic-dynamics", func() { cfg.Polish.ProsodicDynamics = !f.noProsodicDynamics })
	set("stretcher", func() { cfg.Processing.Stretcher = strings.ToLower(strings.TrimSpace(f.stretcher)) })
}

func newCollageCommand(ctx *commandContext) *cobra.Command {
	flags := &collageFlags{}
	cmd := &cobra.Command{
		Use:   "collage <audio>...",
		Short: "Build a syllable collage from aligned recordings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *loaded
			flags.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return services.Wrap(services.ErrValidation, "collage", "flags", "", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return services.Wrap(services.ErrConfiguration, "collage", "prepare", "", err)
			}

			inputs, err := buildInputs(args, flags.alignments)
			if err != nil {
				return err
			}
			reqs := deps.Requirements(&cfg)
			if needsDecoder(inputs) {
				reqs[0].Optional = false
			}
			if err := deps.EnsureRequired(deps.Check(reqs)); err != nil {
				return err
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			tool := ffmpeg.NewService(cfg.Processing.FFmpegBinary, time.Duration(cfg.Processing.ToolTimeoutSeconds)*time.Second)
			var stretcher audio.Stretcher = audio.NativeStretcher{}
			if cfg.Processing.Stretcher == config.StretcherFFmpeg {
				stretcher = tool
			}
			logger.Debug("stretch primitive selected",
				logging.String("stretcher", cfg.Processing.Stretcher),
				logging.String("ffmpeg", tool.Binary()),
			)

			history, err := runs.OpenHistory(cmd.Context(), cfg.HistoryPath())
			if err != nil {
				logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "run will not appear in `glottisdale runs list`"),
					logging.String(logging.FieldErrorHint, "check paths.state_dir"),
				)
				history = nil
			} else {
				defer history.Close()
			}

			engine := collage.New(&cfg, collage.Dependencies{
				Decoder:   tool,
				Stretcher: stretcher,
				History:   history,
				Logger:    logger,
			})
			result, err := engine.Run(cmd.Context(), collage.Request{Inputs: inputs, Label: flags.runName})
			if err != nil {
				return err
			}
			printRunSummary(cmd, result)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func buildInputs(paths, alignments []string) ([]bank.Input, error) {
	if len(alignments) > 0 && len(alignments) != len(paths) {
		return nil, services.Wrap(services.ErrValidation, "collage", "inputs",
			fmt.Sprintf("%d --alignment values for %d inputs", len(alignments), len(paths)), nil)
	}
	inputs := make([]bank.Input, len(paths))
	for i, p := range paths {
		inputs[i] = bank.Input{AudioPath: p}
		if len(alignments) > 0 {
			inputs[i].AlignmentPath = alignments[i]
		}
	}
	return inputs, nil
}

func needsDecoder(inputs []bank.Input) bool {
	for _, in := range inputs {
		if !strings.EqualFold(filepath.Ext(in.AudioPath), ".wav") {
			return true
		}
	}
	return false
}

func printRunSummary(cmd *cobra.Command, result *collage.Result) {
	out := cmd.OutOrStdout()
	m := result.Manifest
	s := newRunSummary(result.Run.Name, shouldColorize(out))
	s.line("Output", statusOK, result.Run.MixPath())
	s.manifest(m)
	roomTone := statusOK
	if len(m.RoomToneSources) == 0 {
		roomTone = statusWarn
	}
	s.line("Room tone", roomTone, yesNo(len(m.RoomToneSources) > 0))
	s.line("Manifest", statusInfo, result.Run.ManifestPath())
	s.write(out)
}
