package grouping

import (
	"errors"

	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

// durationTolerance absorbs float error accumulated while summing durations.
const durationTolerance = 1e-9

var (
	// ErrNoSyllables is returned when no source supplied any syllable.
	ErrNoSyllables = errors.New("no syllables available")
	// ErrTargetUnreachable is returned when the pool cannot approximate the
	// target duration even with reuse.
	ErrTargetUnreachable = errors.New("target duration cannot be reached")
)

// Sample draws syllables from pools until adding the next one would push the
// total past target. The first syllable is always taken. A pool that runs dry
// is refilled with a reshuffled copy, so syllables repeat when the target is
// longer than the material. With one pool the draw order is a shuffle of that
// pool; with several, pools are shuffled independently and visited
// round-robin in input order. The selection is shuffled before returning.
func Sample(pools [][]syllable.Syllable, target float64, stream *rng.Stream) ([]syllable.Syllable, error) {
	var live []*cursor
	for _, pool := range pools {
		if len(pool) == 0 {
			continue
		}
		live = append(live, newCursor(pool))
	}
	if len(live) == 0 {
		return nil, ErrNoSyllables
	}
	total := 0.0
	for _, c := range live {
		total += syllable.TotalDuration(c.pool)
	}
	if total <= 0 {
		return nil, ErrTargetUnreachable
	}

	for _, c := range live {
		c.reshuffle(stream)
	}

	var (
		selected []syllable.Syllable
		sum      float64
	)
	for turn := 0; ; turn++ {
		c := live[turn%len(live)]
		next := c.next(stream)
		d := next.Duration()
		if len(selected) > 0 && sum+d > target+durationTolerance {
			break
		}
		selected = append(selected, next)
		sum += d
		if target <= 0 {
			break
		}
	}

	rng.Shuffle(stream, selected)
	return selected, nil
}

// cursor walks a shuffled copy of one source pool.
type cursor struct {
	pool  []syllable.Syllable
	order []syllable.Syllable
	pos   int
}

func newCursor(pool []syllable.Syllable) *cursor {
	return &cursor{pool: pool}
}

func (c *cursor) reshuffle(stream *rng.Stream) {
	c.order = append(c.order[:0], c.pool...)
	rng.Shuffle(stream, c.order)
	c.pos = 0
}

func (c *cursor) next(stream *rng.Stream) syllable.Syllable {
	if c.pos >= len(c.order) {
		c.reshuffle(stream)
	}
	s := c.order[c.pos]
	c.pos++
	return s
}
