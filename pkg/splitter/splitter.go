/*
Package splitter searches for the most associative way to cut a word in two.

Every split index in [MinFragmentLength, len(word)-MinFragmentLength] is
evaluated. Both halves of every split are fetched concurrently and the
search waits for all of them before grading. A split is graded by the mean of
its two halves' total grades divided by their range, so balanced splits beat
lopsided ones:

	grade = mean(g1, g2) * 1/|g1-g2|   (or mean(g1, g2) when g1 == g2)

Words with a single syllable, or shorter than MinWordLength, are never split.
*/
package splitter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Default search bounds.
const (
	MinFragmentLength = 3
	MinWordLength     = 5
)

// ErrNoSplit is returned when a word must be split but has no valid split index.
var ErrNoSplit = errors.New("word has no valid split")

// SyllableCounter counts the syllables of a word.
type SyllableCounter interface {
	Count(word string) int
}

// Fetcher fetches the association set of a single fragment.
type Fetcher interface {
	Fetch(ctx context.Context, fragment string, limit int) (*association.Set, error)
}

// Candidate is one evaluated way to cut a word: the whole word or two halves.
type Candidate struct {
	Pieces []*association.Set
	Grade  float64
	// Index is the split position in the word, 0 for the unsplit word.
	Index int
}

// Split reports whether the candidate cuts the word in two.
func (c *Candidate) Split() bool { return len(c.Pieces) == 2 }

// Options tunes the search bounds.
type Options struct {
	MinFragmentLength int
	MinWordLength     int
	// MaxConcurrency bounds in-flight fetches, 0 means unbounded.
	MaxConcurrency int
}

// DefaultOptions returns the standard search bounds.
func DefaultOptions() Options {
	return Options{
		MinFragmentLength: MinFragmentLength,
		MinWordLength:     MinWordLength,
	}
}

// Engine finds the best split for a word.
type Engine struct {
	fetcher   Fetcher
	syllables SyllableCounter
	opts      Options
}

// NewEngine creates an Engine. Zero option fields fall back to the defaults.
func NewEngine(fetcher Fetcher, syllables SyllableCounter, opts Options) *Engine {
	if opts.MinFragmentLength <= 0 {
		opts.MinFragmentLength = MinFragmentLength
	}
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = MinWordLength
	}
	return &Engine{
		fetcher:   fetcher,
		syllables: syllables,
		opts:      opts,
	}
}

// Options returns the bounds the engine runs with.
func (e *Engine) Options() Options { return e.opts }

// Whole fetches the unsplit word as a one-piece candidate.
func (e *Engine) Whole(ctx context.Context, word string, limit int) (*Candidate, error) {
	set, err := e.fetcher.Fetch(ctx, word, limit)
	if err != nil {
		return nil, err
	}
	return &Candidate{Pieces: []*association.Set{set}, Grade: set.TotalGrade()}, nil
}

// Splittable reports whether word is long enough and has more than one syllable.
func (e *Engine) Splittable(word string) bool {
	if utf8.RuneCountInString(word) < e.opts.MinWordLength {
		return false
	}
	return e.syllables.Count(word) != 1
}

// SplitIndexes returns every split position the search considers for word, in ascending order.
// Positions count runes, not bytes.
func (e *Engine) SplitIndexes(word string) []int {
	first, last := e.opts.MinFragmentLength, utf8.RuneCountInString(word)-e.opts.MinFragmentLength
	if last < first {
		return nil
	}
	indexes := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

// Search returns the best candidate for word. Every fetch must succeed,
// the first failure fails the whole search.
func (e *Engine) Search(ctx context.Context, word string, limit int) (*Candidate, error) {
	if !e.Splittable(word) {
		log.Debug("word not splittable", "word", word)
		return e.Whole(ctx, word, limit)
	}

	indexes := e.SplitIndexes(word)
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSplit, word)
	}

	runes := []rune(word)
	start := time.Now()
	pieces := make([][2]*association.Set, len(indexes))

	g, gctx := errgroup.WithContext(ctx)
	if e.opts.MaxConcurrency > 0 {
		g.SetLimit(e.opts.MaxConcurrency)
	}
	for n, i := range indexes {
		n := n
		halves := [2]string{string(runes[:i]), string(runes[i:])}
		for side, fragment := range halves {
			side, fragment := side, fragment
			g.Go(func() error {
				set, err := e.fetcher.Fetch(gctx, fragment, limit)
				if err != nil {
					return err
				}
				pieces[n][side] = set
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Candidate
	for n, pair := range pieces {
		grade := CombinedGrade(pair[0].TotalGrade(), pair[1].TotalGrade())
		log.Debugf("split %s|%s grade=%.4f", pair[0], pair[1], grade)
		if best == nil || grade > best.Grade {
			best = &Candidate{
				Pieces: []*association.Set{pair[0], pair[1]},
				Grade:  grade,
				Index:  indexes[n],
			}
		}
	}

	log.Debugf("Took [ %v ] to split '%s' at %d", time.Since(start), word, best.Index)
	return best, nil
}

// Best is what the outer surfaces call: the whole word when split is false
// or the word has no split position ("hello" with the default bounds),
// the Search result otherwise.
func (e *Engine) Best(ctx context.Context, word string, limit int, split bool) (*Candidate, error) {
	if !split || len(e.SplitIndexes(word)) == 0 {
		return e.Whole(ctx, word, limit)
	}
	return e.Search(ctx, word, limit)
}

// CombinedGrade grades a split from its halves' total grades.
// Halves with equal grades fall back to the plain mean.
func CombinedGrade(g1, g2 float64) float64 {
	mean := (g1 + g2) / 2
	spread := math.Abs(g1 - g2)
	if spread == 0 {
		return mean
	}
	return mean * (1 / spread)
}
