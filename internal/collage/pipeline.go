package collage

import (
	"context"
	"fmt"
	"log/slog"

	"glottisdale/internal/assemble"
	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/grouping"
	"glottisdale/internal/logging"
	"glottisdale/internal/polish"
	"glottisdale/internal/rng"
	"glottisdale/internal/services"
	"glottisdale/internal/syllable"
	"glottisdale/internal/transform"
)

type polishStage string

const (
	stagePitch  polishStage = "pitch_normalize"
	stageVolume polishStage = "volume_normalize"
)

// polishOrder is the order the clip normalizations run in. Both run on the
// cut syllables, ahead of every stretch.
var polishOrder = []polishStage{stagePitch, stageVolume}

// rendered is the in-memory result of a run before anything is written.
type rendered struct {
	selected   int
	words      []audio.Clip
	phrases    [][]int
	sentenceOf []int
	gaps       []assemble.Gap
	gapSamples []int
	ambience   polish.Ambience
	mix        audio.Clip
}

func (e *Engine) render(ctx context.Context, b *bank.Bank, stream *rng.Stream, logger *slog.Logger) (*rendered, error) {
	cfg := e.cfg
	selected, err := grouping.Sample(b.Pools(), cfg.Collage.TargetDuration, stream)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "collage", "sample",
			fmt.Sprintf("%d sources, %d syllables", len(b.Sources()), b.TotalSyllables()), err)
	}
	logger.Info("syllables selected",
		logging.Int64("seed", stream.Seed()),
		logging.Int("selected", len(selected)),
		logging.Int("available", b.TotalSyllables()),
		logging.Seconds("selected_duration", syllable.TotalDuration(selected)),
	)

	groups := grouping.GroupWords(selected, cfg.Collage.SyllablesPerWord, stream, cfg.Collage.OrderingAttempts)
	words := cutWords(b, groups, cfg.Collage.PaddingMS, cfg.Collage.FadeMS, logger)
	if len(words) == 0 {
		return nil, services.Wrap(services.ErrValidation, "collage", "cut", "every selected syllable was empty", ErrNoSyllables)
	}

	engine := polish.NewEngine(e.deps.Stretcher, cfg.Processing.AnalysisWorkers, logger)
	words, err = e.normalize(ctx, engine, words)
	if err != nil {
		return nil, err
	}
	amb, err := engine.Extract(ctx, b.Sources(), cfg.Polish.RoomTone, cfg.Polish.Breaths)
	if err != nil {
		return nil, err
	}

	tf := transform.New(e.deps.Stretcher, stream, logger)
	words = tf.Stutter(words, cfg.Stutter)
	if cfg.HasSyllableStretch() {
		words = tf.StretchSyllables(ctx, words, cfg.Stretch)
	}
	wordClips := assemble.Words(words, cfg.Collage.SyllableCrossfadeMS)
	wordClips = tf.StretchWords(ctx, wordClips, cfg.Stretch)
	wordClips = tf.RepeatWords(ctx, wordClips, cfg.Repeat, newFreshPool(b, selected, stream, cfg.Collage))

	phrases := grouping.GroupChunks(sequence(len(wordClips)), cfg.Collage.WordsPerPhrase, stream)
	members := make([][]audio.Clip, len(phrases))
	for i, p := range phrases {
		for _, wi := range p {
			members[i] = append(members[i], wordClips[wi])
		}
	}
	phraseClips := assemble.Phrases(members, cfg.Collage.WordCrossfadeMS)
	if cfg.Polish.ProsodicDynamics {
		for i := range phraseClips {
			phraseClips[i] = polish.ProsodicDynamics(phraseClips[i])
		}
	}

	sentences := grouping.GroupChunks(sequence(len(phraseClips)), cfg.Collage.PhrasesPerSentence, stream)
	sizes := make([]int, len(sentences))
	sentenceOf := make([]int, 0, len(phraseClips))
	for si, s := range sentences {
		sizes[si] = len(s)
		for range s {
			sentenceOf = append(sentenceOf, si)
		}
	}

	filler := assemble.Filler{SampleRate: b.SampleRate()}
	for _, rt := range amb.RoomTones {
		filler.RoomTones = append(filler.RoomTones, rt.Samples)
	}
	for _, br := range amb.Breaths {
		filler.Breaths = append(filler.Breaths, br.Samples)
	}
	gaps := assemble.PlanGaps(sizes, assemble.PauseOptions{
		PhrasePauseMS:     cfg.Collage.PhrasePauseMS,
		SentencePauseMS:   cfg.Collage.SentencePauseMS,
		BreathProbability: cfg.Polish.BreathProbability,
		Breaths:           len(filler.Breaths),
	}, stream)

	mix, gapSamples := assemble.Render(phraseClips, gaps, filler)
	mix = tf.Speed(ctx, mix, cfg.Stretch.Speed)
	mix = mix.Replace(polish.MixNoiseBed(mix.Samples, cfg.Polish.NoiseLevelDB, stream), nil)

	logger.Info("collage assembled",
		logging.Int("words", len(wordClips)),
		logging.Int("phrases", len(phraseClips)),
		logging.Int("sentences", len(sentences)),
		logging.Seconds("duration", mix.Duration()),
	)
	return &rendered{
		selected:   len(selected),
		words:      wordClips,
		phrases:    phrases,
		sentenceOf: sentenceOf,
		gaps:       gaps,
		gapSamples: gapSamples,
		ambience:   amb,
		mix:        mix,
	}, nil
}

func (e *Engine) normalize(ctx context.Context, engine *polish.Engine, words [][]audio.Clip) ([][]audio.Clip, error) {
	flat := make([]audio.Clip, 0, len(words))
	for _, w := range words {
		flat = append(flat, w...)
	}
	for _, stage := range polishOrder {
		switch stage {
		case stagePitch:
			if !e.cfg.Polish.PitchNormalize {
				continue
			}
			var err error
			if flat, err = engine.NormalizePitch(ctx, flat, e.cfg.Polish.PitchRange); err != nil {
				return nil, err
			}
		case stageVolume:
			if e.cfg.Polish.VolumeNormalize {
				flat = polish.NormalizeVolume(flat)
			}
		}
	}
	out := make([][]audio.Clip, len(words))
	next := 0
	for i, w := range words {
		out[i] = flat[next : next+len(w) : next+len(w)]
		next += len(w)
	}
	return out, nil
}

func cutWords(b *bank.Bank, groups [][]syllable.Syllable, paddingMS, fadeMS float64, logger *slog.Logger) [][]audio.Clip {
	out := make([][]audio.Clip, 0, len(groups))
	for _, g := range groups {
		word := make([]audio.Clip, 0, len(g))
		for _, s := range g {
			clip, err := b.Cut(s, paddingMS, fadeMS)
			if err != nil {
				logger.Debug("syllable skipped",
					logging.String(logging.FieldSource, s.Source),
					logging.Seconds("start", s.Start),
					logging.Error(err),
				)
				continue
			}
			word = append(word, clip)
		}
		if len(word) > 0 {
			out = append(out, word)
		}
	}
	return out
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
