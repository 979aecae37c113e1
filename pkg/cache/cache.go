// Package cache keeps recently fetched lookup results in memory.
package cache

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of words kept per cache.
const DefaultSize = 2048

// Lookup wraps an association.Lookup with LRU caches for sound-alike and closest-word results.
// Failed lookups are not cached.
type Lookup struct {
	inner     association.Lookup
	soundLike *lru.Cache[string, []association.Record]
	closest   *lru.Cache[string, association.Entry]
	hits      atomic.Int64
	misses    atomic.Int64
}

// Verify interface implementation at compile time
var _ association.Lookup = (*Lookup)(nil)

// New wraps inner. A size <= 0 returns inner unchanged.
func New(inner association.Lookup, size int) association.Lookup {
	if size <= 0 {
		return inner
	}
	soundLike, _ := lru.New[string, []association.Record](size)
	closest, _ := lru.New[string, association.Entry](size)
	return &Lookup{
		inner:     inner,
		soundLike: soundLike,
		closest:   closest,
	}
}

func key(word string) string {
	return strings.ToLower(word)
}

// SoundLike returns cached records when available, otherwise asks the inner lookup.
func (l *Lookup) SoundLike(ctx context.Context, word string) ([]association.Record, error) {
	k := key(word)
	if records, ok := l.soundLike.Get(k); ok {
		l.hits.Add(1)
		return clone(records), nil
	}
	l.misses.Add(1)

	records, err := l.inner.SoundLike(ctx, word)
	if err != nil {
		return nil, err
	}
	l.soundLike.Add(k, clone(records))
	return records, nil
}

// Closest returns the cached closest match when available, otherwise asks the inner lookup.
func (l *Lookup) Closest(ctx context.Context, word string) (*association.Entry, error) {
	k := key(word)
	if entry, ok := l.closest.Get(k); ok {
		l.hits.Add(1)
		entry.Definitions = append([]string(nil), entry.Definitions...)
		return &entry, nil
	}
	l.misses.Add(1)

	entry, err := l.inner.Closest(ctx, word)
	if err != nil {
		return nil, err
	}
	stored := *entry
	stored.Definitions = append([]string(nil), entry.Definitions...)
	l.closest.Add(k, stored)
	return entry, nil
}

// Purge drops every cached result.
func (l *Lookup) Purge() {
	l.soundLike.Purge()
	l.closest.Purge()
	log.Debug("lookup cache purged")
}

// Stats returns cache counters.
func (l *Lookup) Stats() map[string]int {
	return map[string]int{
		"soundLikeWords": l.soundLike.Len(),
		"closestWords":   l.closest.Len(),
		"hits":           int(l.hits.Load()),
		"misses":         int(l.misses.Load()),
	}
}

func clone(records []association.Record) []association.Record {
	if records == nil {
		return nil
	}
	out := make([]association.Record, len(records))
	copy(out, records)
	return out
}
