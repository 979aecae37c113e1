package association

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

// Fetcher turns raw lookup results into scored association sets.
type Fetcher struct {
	lookup Lookup
}

// NewFetcher creates a Fetcher backed by lookup.
func NewFetcher(lookup Lookup) *Fetcher {
	return &Fetcher{lookup: lookup}
}

// Fetch queries the lookup once for fragment and returns its associations
// sorted by frequency, most frequent first. Equal frequencies keep lookup order.
// Lookup failures are returned wrapped in ErrLookup, nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, fragment string, limit int) (*Set, error) {
	records, err := f.lookup.SoundLike(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLookup, fragment, err)
	}

	associations := make([]Association, 0, len(records))
	for _, r := range records {
		associations = append(associations, FromRecord(r))
	}

	sort.SliceStable(associations, func(i, j int) bool {
		return associations[i].RawFrequency() > associations[j].RawFrequency()
	})

	set := NewSet(fragment, associations, limit)
	log.Debug("fetched associations", "fragment", fragment, "count", set.Len(), "grade", set.TotalGrade())
	return set, nil
}
