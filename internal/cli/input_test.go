package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	records map[string][]association.Record
	entries map[string]*association.Entry
}

func (f *fakeLookup) SoundLike(_ context.Context, word string) ([]association.Record, error) {
	return f.records[word], nil
}

func (f *fakeLookup) Closest(_ context.Context, word string) (*association.Entry, error) {
	if e, ok := f.entries[word]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w for %q", datamuse.ErrNoMatch, word)
}

type twoSyllables struct{}

func (twoSyllables) Count(string) int { return 2 }

func newHandler(out *bytes.Buffer) *InputHandler {
	lookup := &fakeLookup{
		records: map[string][]association.Record{
			"hey": {
				{Word: "hay", Score: 100, Frequency: 20},
				{Word: "he", Score: 80, Frequency: 5000, HasDefinition: true},
			},
			"pav":   {{Word: "pav", Score: 100, Frequency: 11000}},
			"ement": {{Word: "cement", Score: 25}},
		},
		entries: map[string]*association.Entry{
			"paralize": {Word: "paralyze", Definitions: []string{"v\tmake powerless"}},
		},
	}
	engine := splitter.NewEngine(association.NewFetcher(lookup), twoSyllables{}, splitter.DefaultOptions())
	return NewInputHandler(engine, lookup, 5, true, out)
}

func TestStartPrintsAssociations(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	require.NoError(t, h.Start(context.Background(), strings.NewReader("Hey\n")))
	text := out.String()
	assert.Contains(t, text, "(2 found)")
	assert.Contains(t, text, "he")
	assert.Contains(t, text, "hay")
	assert.Contains(t, text, "[def]")
}

func TestStartShowsSplit(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	require.NoError(t, h.Start(context.Background(), strings.NewReader("pavement\n:s\npavement\n")))
	text := out.String()
	assert.Contains(t, text, "pav | ement")
	assert.Contains(t, text, "cement")
	assert.Contains(t, text, "splitting off")
	assert.Contains(t, text, "(0 found)")
}

func TestStartFiveLetterWord(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	require.NoError(t, h.Start(context.Background(), strings.NewReader("hello\n")))
	text := out.String()
	assert.NotContains(t, text, "Search failed")
	assert.Contains(t, text, "(0 found)")
}

func TestStartCommands(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	input := strings.Join([]string{
		":l 1",
		"hey",
		":l zero",
		":d paralize",
		":c qqqq",
		"r2d2",
		":x",
		":q",
		"hey",
	}, "\n")
	require.NoError(t, h.Start(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "limit set to 1")
	assert.NotContains(t, text, "hay")
	assert.Contains(t, text, `Invalid limit: "zero"`)
	assert.Contains(t, text, "paralyze")
	assert.Contains(t, text, "make powerless")
	assert.Contains(t, text, "Lookup failed for 'qqqq'")
	assert.Contains(t, text, `Not a word: "r2d2"`)
	assert.Contains(t, text, "Unknown command: :x")
	assert.Equal(t, 7, h.Requests())
}

func TestStartStopsOnCancelledContext(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Start(ctx, strings.NewReader("hey\n")), context.Canceled)
	assert.Equal(t, 0, h.Requests())
}
