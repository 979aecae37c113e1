package association

import (
	"context"
	"errors"
)

// ErrLookup marks failures coming from the sound-like lookup.
var ErrLookup = errors.New("association lookup failed")

// Record is one raw candidate returned by a sound-like lookup.
type Record struct {
	Word          string
	Score         int
	Frequency     float64 // occurrences per million words
	HasDefinition bool
}

// Entry is the closest sound-alike match for a word with its dictionary definitions.
type Entry struct {
	Word        string
	Definitions []string
}

// Lookup is the external sound-alike word source.
//
// SoundLike must only return purely alphabetic words longer than one letter,
// callers do not filter again. An empty result is not an error.
type Lookup interface {
	SoundLike(ctx context.Context, word string) ([]Record, error)
	Closest(ctx context.Context, word string) (*Entry, error)
}
