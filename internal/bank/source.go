package bank

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"glottisdale/internal/audio"
	"glottisdale/internal/logging"
	"glottisdale/internal/phonotactics"
	"glottisdale/internal/services"
	"glottisdale/internal/syllable"
	"glottisdale/internal/textutil"
)

// Input names one source recording and its alignment sidecar. An empty
// AlignmentPath uses syllable.SidecarPath(AudioPath).
type Input struct {
	AudioPath     string
	AlignmentPath string
}

// Source is one decoded recording and its syllables.
type Source struct {
	ID         string
	Path       string
	Samples    []float64
	SampleRate int
	Syllables  []syllable.Syllable
	Words      []syllable.Word
	Skipped    int
}

// Duration returns the source length in seconds.
func (s *Source) Duration() float64 {
	return audio.Duration(s.Samples, s.SampleRate)
}

// Decoder converts a non-WAV container into a mono WAV file.
type Decoder interface {
	Decode(ctx context.Context, source, dest string, sampleRate int) error
}

// Loader decodes sources and resolves their syllables.
type Loader struct {
	decoder    Decoder
	sampleRate int
	workers    int
	workDir    string
	logger     *slog.Logger
}

// NewLoader returns a loader that resamples every source to sampleRate. The
// decoder may be nil when all inputs are WAV files.
func NewLoader(decoder Decoder, sampleRate, workers int, workDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		decoder:    decoder,
		sampleRate: sampleRate,
		workers:    max(workers, 1),
		workDir:    workDir,
		logger:     logging.NewComponentLogger(logger, "bank"),
	}
}

// Load decodes every input concurrently and returns sources in input order.
func (l *Loader) Load(ctx context.Context, inputs []Input) ([]*Source, error) {
	ids := SourceIDs(inputs)
	sources := make([]*Source, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, in := range inputs {
		g.Go(func() error {
			src, err := l.loadOne(gctx, ids[i], in)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (l *Loader) loadOne(ctx context.Context, id string, in Input) (*Source, error) {
	samples, sr, err := l.decode(ctx, id, in.AudioPath)
	if err != nil {
		return nil, err
	}
	if l.sampleRate > 0 && sr != l.sampleRate {
		samples = audio.Resample(samples, sr, l.sampleRate)
		sr = l.sampleRate
	}

	alignPath := in.AlignmentPath
	if strings.TrimSpace(alignPath) == "" {
		alignPath = syllable.SidecarPath(in.AudioPath)
	}
	doc, err := syllable.LoadAlignment(alignPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "bank", "load alignment", alignPath, err)
		}
		return nil, services.Wrap(services.ErrValidation, "bank", "load alignment", alignPath, err)
	}

	syllables, skipped := doc.Resolve(id, phonotactics.Syllabify)
	syllables, clamped := dropOutOfRange(syllables, audio.Duration(samples, sr))
	skipped += clamped

	src := &Source{
		ID:         id,
		Path:       in.AudioPath,
		Samples:    samples,
		SampleRate: sr,
		Syllables:  syllables,
		Words:      doc.Words,
		Skipped:    skipped,
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldSource, id),
		logging.Int("syllables", len(syllables)),
		logging.Seconds("duration", src.Duration()),
	}
	if skipped > 0 {
		logging.WarnWithContext(l.logger, "alignment entries skipped", "alignment_skipped",
			append(attrs,
				logging.Int("skipped", skipped),
				logging.String(logging.FieldImpact, "syllables unavailable for selection"),
				logging.String(logging.FieldErrorHint, "check alignment timing against the audio"),
			)...)
	} else {
		l.logger.Debug("source loaded", logging.Args(attrs...)...)
	}
	return src, nil
}

func (l *Loader) decode(ctx context.Context, id, path string) ([]float64, int, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, sr, err := audio.ReadWAV(path)
		if err == nil {
			return samples, sr, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, services.Wrap(services.ErrNotFound, "bank", "decode", path, err)
		}
		if l.decoder == nil {
			return nil, 0, services.Wrap(services.ErrValidation, "bank", "decode", path, err)
		}
	}
	if l.decoder == nil {
		return nil, 0, services.Wrap(services.ErrConfiguration, "bank", "decode", "no decoder for "+filepath.Ext(path), nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, 0, services.Wrap(services.ErrNotFound, "bank", "decode", path, err)
	}

	dir := l.workDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmp, err := os.MkdirTemp(dir, "decode-")
	if err != nil {
		return nil, 0, fmt.Errorf("bank: decode work dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	dest := filepath.Join(tmp, textutil.SanitizeToken(id)+".wav")
	if err := l.decoder.Decode(ctx, path, dest, l.sampleRate); err != nil {
		return nil, 0, err
	}
	return audio.ReadWAV(dest)
}

// dropOutOfRange removes syllables that start beyond the end of the audio.
func dropOutOfRange(syllables []syllable.Syllable, duration float64) ([]syllable.Syllable, int) {
	out := syllables[:0:0]
	dropped := 0
	for _, s := range syllables {
		if s.Start >= duration {
			dropped++
			continue
		}
		out = append(out, s)
	}
	return out, dropped
}

// SourceIDs derives a source id from each input's file stem. Repeated stems
// get -2, -3 suffixes in input order.
func SourceIDs(inputs []Input) []string {
	ids := make([]string, len(inputs))
	seen := make(map[string]int, len(inputs))
	for i, in := range inputs {
		base := filepath.Base(in.AudioPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			stem = "source"
		}
		seen[stem]++
		if n := seen[stem]; n > 1 {
			ids[i] = stem + "-" + strconv.Itoa(n)
			continue
		}
		ids[i] = stem
	}
	return ids
}
