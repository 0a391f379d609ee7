package polish

import (
	"context"

	"golang.org/x/sync/errgroup"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/logging"
)

// RoomTone is a quiet stretch cut from one source.
type RoomTone struct {
	Source  string
	Span    Span
	Samples []float64
}

// Breath is one breath candidate cut from a source.
type Breath struct {
	Source  string
	Span    Span
	Samples []float64
}

// Ambience holds the gap material found across all sources, in source input
// order.
type Ambience struct {
	RoomTones []RoomTone
	Breaths   []Breath
}

// Extract scans every source for room tone and breath candidates. Sources are
// analysed in parallel; results keep input order so later draws over them
// are deterministic.
func (e *Engine) Extract(ctx context.Context, sources []*bank.Source, roomTone, breaths bool) (Ambience, error) {
	if !roomTone && !breaths {
		return Ambience{}, nil
	}
	tones := make([]*RoomTone, len(sources))
	found := make([][]Breath, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if roomTone {
				if span, ok := FindRoomTone(src.Samples, src.SampleRate); ok {
					tones[i] = &RoomTone{Source: src.ID, Span: span, Samples: cut(src, span)}
				}
			}
			if breaths {
				for _, span := range FindBreaths(src.Samples, src.SampleRate, WordSpans(src)) {
					found[i] = append(found[i], Breath{Source: src.ID, Span: span, Samples: cut(src, span)})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Ambience{}, err
	}

	var amb Ambience
	for i, src := range sources {
		if tones[i] != nil {
			amb.RoomTones = append(amb.RoomTones, *tones[i])
			e.logger.Debug("room tone found",
				logging.String(logging.FieldSource, src.ID),
				logging.Seconds("start", tones[i].Span.Start),
				logging.Seconds("end", tones[i].Span.End),
			)
		}
		amb.Breaths = append(amb.Breaths, found[i]...)
	}
	if roomTone && len(amb.RoomTones) == 0 {
		e.logger.Info("room tone unavailable", logging.Args(
			logging.DecisionAttrs("room_tone", "disabled", "no quiet window in any source")...)...)
	}
	if breaths && len(amb.Breaths) == 0 {
		e.logger.Info("breaths unavailable", logging.Args(
			logging.DecisionAttrs("breaths", "disabled", "no breath candidates detected")...)...)
	}
	return amb, nil
}

// WordSpans returns a source's word boundaries, taken from its transcript
// words when present and otherwise from the span of each word's syllables.
func WordSpans(src *bank.Source) []Span {
	if len(src.Words) > 0 {
		out := make([]Span, 0, len(src.Words))
		for _, w := range src.Words {
			if w.End > w.Start {
				out = append(out, Span{Start: w.Start, End: w.End})
			}
		}
		return out
	}
	var out []Span
	last := -1
	for _, s := range src.Syllables {
		if s.WordIndex != last || len(out) == 0 {
			out = append(out, Span{Start: s.Start, End: s.End})
			last = s.WordIndex
			continue
		}
		cur := &out[len(out)-1]
		cur.Start = min(cur.Start, s.Start)
		cur.End = max(cur.End, s.End)
	}
	return out
}

func cut(src *bank.Source, span Span) []float64 {
	samples, err := audio.Cut(src.Samples, src.SampleRate, span.Start, span.End, 0, 0)
	if err != nil {
		return nil
	}
	return samples
}
