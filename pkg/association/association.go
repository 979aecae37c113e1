/*
Package association scores sound-like word associations and groups them per fragment.

A fragment is the word (or one half of a split) that is sent to a sound-alike
lookup. Every candidate returned by the lookup becomes an Association with a
weighted grade:

	grade = 0.8 * similarity/100 + 0.2 * frequency/11000

Similarity dominates, frequent words act as a tie-breaker toward more
memorable mnemonics. The frequency maximum is a calibration constant (the
frequency of "that" per million words), not a computed maximum, so grades
are comparable across fragments.

A Set holds every association fetched for one fragment, sorted by frequency,
and exposes only the first limit of them. Its total grade is computed over
the full set so that the quality signal reflects full recall.
*/
package association

// Scoring constants.
const (
	MaxSimilarity    = 100.0
	MaxFrequency     = 11000.0 // "that"
	SimilarityWeight = 0.8
	FrequencyWeight  = 1 - SimilarityWeight
)

// Grade combines a raw similarity score and a raw frequency into a single weighted grade.
// Values are not clamped.
func Grade(similarity, frequency float64) float64 {
	return SimilarityWeight*(similarity/MaxSimilarity) + FrequencyWeight*(frequency/MaxFrequency)
}

// Association is a single sound-like candidate for a fragment.
type Association struct {
	name          string
	similarity    float64
	frequency     float64
	rawFrequency  float64
	hasDefinition bool
	grade         float64
}

// New builds an Association from raw lookup values.
func New(name string, similarity, frequency float64, hasDefinition bool) Association {
	return Association{
		name:          name,
		similarity:    similarity / MaxSimilarity,
		frequency:     frequency / MaxFrequency,
		rawFrequency:  frequency,
		hasDefinition: hasDefinition,
		grade:         Grade(similarity, frequency),
	}
}

// FromRecord builds an Association from a lookup record.
func FromRecord(r Record) Association {
	return New(r.Word, float64(r.Score), r.Frequency, r.HasDefinition)
}

// Name returns the associated word.
func (a Association) Name() string { return a.name }

// Similarity returns the normalized similarity score.
func (a Association) Similarity() float64 { return a.similarity }

// Frequency returns the normalized frequency.
func (a Association) Frequency() float64 { return a.frequency }

// RawFrequency returns the occurrences per million words as reported by the lookup.
func (a Association) RawFrequency() float64 { return a.rawFrequency }

// HasDefinition reports whether the lookup knows a definition for the word.
func (a Association) HasDefinition() bool { return a.hasDefinition }

// Grade returns the weighted grade of the association.
func (a Association) Grade() float64 { return a.grade }
