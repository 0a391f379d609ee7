package collage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/fileutil"
	"glottisdale/internal/logging"
	"glottisdale/internal/manifest"
	"glottisdale/internal/runs"
	"glottisdale/internal/services"
)

func (e *Engine) write(ctx context.Context, req Request, b *bank.Bank, seed int64, out *rendered, logger *slog.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run, err := runs.Allocate(e.cfg.Paths.OutputDir, req.Label, seed, e.deps.Now())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "collage", "allocate run", e.cfg.Paths.OutputDir, err)
	}

	m := manifest.Manifest{
		RunName:           run.Name,
		Sources:           b.IDs(),
		TotalSyllables:    b.TotalSyllables(),
		SelectedSyllables: out.selected,
		Seed:              seed,
		Parameters:        manifest.NewParameters(e.cfg),
		Duration:          out.mix.Duration(),
		Clips:             make([]manifest.Clip, 0, len(out.words)),
		Phrases:           make([]manifest.Phrase, 0, len(out.phrases)),
	}

	writeClips := e.cfg.Collage.WriteClips
	if writeClips {
		if err := os.MkdirAll(run.ClipsDir(), 0o755); err != nil {
			return nil, fmt.Errorf("collage: create clips dir: %w", err)
		}
	}
	sampler := logging.NewProgressSampler(25)
	var clipPaths []string
	for i, w := range out.words {
		wordIndex, syllableIndex := 0, 0
		if len(w.Syllables) > 0 {
			wordIndex, syllableIndex = w.Syllables[0].WordIndex, w.Syllables[0].Index
		}
		name := runs.ClipName(i+1, w.DominantSource(), wordIndex, syllableIndex)
		m.Clips = append(m.Clips, manifest.NewClip(name, w))
		if !writeClips {
			continue
		}
		path := filepath.Join(run.ClipsDir(), name)
		if err := audio.WriteWAV(path, w.Samples, w.SampleRate); err != nil {
			return nil, fmt.Errorf("collage: write clip %s: %w", name, err)
		}
		clipPaths = append(clipPaths, path)
		if sampler.ShouldLog("write_clips", i+1, len(out.words)) {
			logger.Debug("writing clips", logging.Int("done", i+1), logging.Int("total", len(out.words)))
		}
	}

	for pi, members := range out.phrases {
		gap := out.gaps[pi]
		m.Phrases = append(m.Phrases, manifest.Phrase{
			Clips:      members,
			Sentence:   out.sentenceOf[pi],
			GapAfterMS: 1000 * float64(out.gapSamples[pi]) / float64(out.mix.SampleRate),
			GapSamples: out.gapSamples[pi],
			PauseMS:    gap.MS,
			GapType:    string(gap.Kind),
			Breath:     gap.HasBreath(),
		})
	}
	for _, rt := range out.ambience.RoomTones {
		m.RoomToneSources = append(m.RoomToneSources, rt.Source)
	}
	m.BreathCount = len(out.ambience.Breaths)

	if err := audio.WriteWAV(run.MixPath(), out.mix.Samples, out.mix.SampleRate); err != nil {
		return nil, fmt.Errorf("collage: write mix: %w", err)
	}
	if len(clipPaths) > 0 {
		if _, err := fileutil.ZipFiles(run.ArchivePath(), clipPaths); err != nil {
			return nil, fmt.Errorf("collage: archive clips: %w", err)
		}
	}
	if err := manifest.Write(run.ManifestPath(), m); err != nil {
		return nil, fmt.Errorf("collage: write manifest: %w", err)
	}

	return &Result{
		Run:      run,
		Manifest: m,
		Record: runs.Record{
			Name:              run.Name,
			Dir:               run.Dir,
			Seed:              seed,
			Sources:           m.Sources,
			SelectedSyllables: m.SelectedSyllables,
			TotalSyllables:    m.TotalSyllables,
			Duration:          m.Duration,
			CreatedAt:         e.deps.Now().UTC(),
		},
	}, nil
}
