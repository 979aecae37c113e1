package association

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeLookup struct {
	records map[string][]Record
	err     error
	calls   int
}

func (f *fakeLookup) SoundLike(_ context.Context, word string) ([]Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[word], nil
}

func (f *fakeLookup) Closest(_ context.Context, word string) (*Entry, error) {
	return &Entry{Word: word}, nil
}

func TestGrade(t *testing.T) {
	assert.InDelta(t, 0.0, Grade(0, 0), 1e-12)
	assert.InDelta(t, 1.0, Grade(100, 11000), 1e-12)
	assert.InDelta(t, 0.8, Grade(100, 0), 1e-12)
	assert.InDelta(t, 0.2, Grade(0, 11000), 1e-12)
	assert.InDelta(t, 0.4+0.02, Grade(50, 1100), 1e-12)
}

func TestGradeRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.Float64Range(0, MaxSimilarity).Draw(t, "similarity")
		f := rapid.Float64Range(0, MaxFrequency).Draw(t, "frequency")
		g := Grade(s, f)
		if g < 0 || g > 1+1e-12 {
			t.Fatalf("grade(%v, %v) = %v out of [0,1]", s, f, g)
		}
	})
}

func TestGradeMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s1 := rapid.Float64Range(0, MaxSimilarity).Draw(t, "s1")
		s2 := rapid.Float64Range(s1, MaxSimilarity).Draw(t, "s2")
		f1 := rapid.Float64Range(0, MaxFrequency).Draw(t, "f1")
		f2 := rapid.Float64Range(f1, MaxFrequency).Draw(t, "f2")
		if Grade(s2, f1) < Grade(s1, f1) {
			t.Fatalf("grade not monotonic in similarity: %v < %v", s2, s1)
		}
		if Grade(s1, f2) < Grade(s1, f1) {
			t.Fatalf("grade not monotonic in frequency: %v < %v", f2, f1)
		}
	})
}

func TestNewAssociationNormalizes(t *testing.T) {
	a := New("pave", 90, 5500, true)
	assert.Equal(t, "pave", a.Name())
	assert.InDelta(t, 0.9, a.Similarity(), 1e-12)
	assert.InDelta(t, 0.5, a.Frequency(), 1e-12)
	assert.InDelta(t, 5500, a.RawFrequency(), 1e-12)
	assert.True(t, a.HasDefinition())
	assert.InDelta(t, 0.8*0.9+0.2*0.5, a.Grade(), 1e-12)
}

func TestFetchSortsByFrequency(t *testing.T) {
	lookup := &fakeLookup{records: map[string][]Record{
		"pave": {
			{Word: "pay", Score: 70, Frequency: 300},
			{Word: "pave", Score: 100, Frequency: 5},
			{Word: "paved", Score: 90, Frequency: 300},
			{Word: "page", Score: 80, Frequency: 900},
		},
	}}

	set, err := NewFetcher(lookup).Fetch(context.Background(), "pave", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, lookup.calls)
	assert.Equal(t, "pave", set.Fragment())
	assert.Equal(t, 2, set.Limit())

	var names []string
	for _, a := range set.All() {
		names = append(names, a.Name())
	}
	// pay and paved tie on frequency, lookup order is kept
	assert.Equal(t, []string{"page", "pay", "paved", "pave"}, names)

	exposed := set.Exposed()
	require.Len(t, exposed, 2)
	assert.Equal(t, "page", exposed[0].Name())
	assert.Equal(t, "pay", exposed[1].Name())
}

func TestFetchExposedLength(t *testing.T) {
	records := []Record{
		{Word: "one", Score: 10, Frequency: 1},
		{Word: "two", Score: 20, Frequency: 2},
		{Word: "three", Score: 30, Frequency: 3},
	}
	lookup := &fakeLookup{records: map[string][]Record{"word": records}}
	fetcher := NewFetcher(lookup)

	for _, limit := range []int{1, 2, 3, 10} {
		set, err := fetcher.Fetch(context.Background(), "word", limit)
		require.NoError(t, err)
		assert.Len(t, set.Exposed(), min(limit, len(records)), "limit %d", limit)
		assert.Equal(t, 3, set.Len())
	}
}

func TestTotalGradeIgnoresLimit(t *testing.T) {
	lookup := &fakeLookup{records: map[string][]Record{
		"ment": {
			{Word: "meant", Score: 95, Frequency: 120},
			{Word: "mint", Score: 80, Frequency: 40},
			{Word: "mend", Score: 75, Frequency: 15},
		},
	}}
	fetcher := NewFetcher(lookup)

	one, err := fetcher.Fetch(context.Background(), "ment", 1)
	require.NoError(t, err)
	all, err := fetcher.Fetch(context.Background(), "ment", 50)
	require.NoError(t, err)

	want := Grade(95, 120) + Grade(80, 40) + Grade(75, 15)
	assert.InDelta(t, want, one.TotalGrade(), 1e-12)
	assert.Equal(t, one.TotalGrade(), all.TotalGrade())
}

func TestFetchIdempotent(t *testing.T) {
	lookup := &fakeLookup{records: map[string][]Record{
		"bill": {
			{Word: "bill", Score: 100, Frequency: 60},
			{Word: "bell", Score: 85, Frequency: 60},
			{Word: "ball", Score: 80, Frequency: 90},
		},
	}}
	fetcher := NewFetcher(lookup)

	first, err := fetcher.Fetch(context.Background(), "bill", 2)
	require.NoError(t, err)
	second, err := fetcher.Fetch(context.Background(), "bill", 2)
	require.NoError(t, err)

	assert.Equal(t, first.TotalGrade(), second.TotalGrade())
	assert.Equal(t, first.Exposed(), second.Exposed())
}

func TestFetchEmptyResult(t *testing.T) {
	set, err := NewFetcher(&fakeLookup{}).Fetch(context.Background(), "xyz", 5)
	require.NoError(t, err)
	assert.Zero(t, set.TotalGrade())
	assert.Empty(t, set.Exposed())
	assert.Empty(t, set.All())
}

func TestFetchPropagatesLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewFetcher(&fakeLookup{err: boom}).Fetch(context.Background(), "word", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLookup)
	assert.ErrorIs(t, err, boom)
}

func TestSetIsImmutable(t *testing.T) {
	src := []Association{New("a", 10, 1, false), New("b", 20, 2, false)}
	set := NewSet("ab", src, 1)

	src[0] = New("mutated", 0, 0, false)
	assert.Equal(t, "a", set.All()[0].Name())

	exposed := set.Exposed()
	exposed[0] = New("mutated", 0, 0, false)
	assert.Equal(t, "a", set.Exposed()[0].Name())
}
