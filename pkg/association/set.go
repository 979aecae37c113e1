package association

// Set holds every association fetched for one fragment.
// It is immutable after construction and safe to share between goroutines.
type Set struct {
	fragment     string
	limit        int
	associations []Association
	totalGrade   float64
}

// NewSet builds a Set over associations that are already in presentation order.
// The slice is copied.
func NewSet(fragment string, associations []Association, limit int) *Set {
	all := make([]Association, len(associations))
	copy(all, associations)

	var total float64
	for _, a := range all {
		total += a.Grade()
	}

	return &Set{
		fragment:     fragment,
		limit:        limit,
		associations: all,
		totalGrade:   total,
	}
}

// Fragment returns the word or sub-word that was queried.
func (s *Set) Fragment() string { return s.fragment }

// Limit returns the maximum number of exposed associations.
func (s *Set) Limit() int { return s.limit }

// Len returns the number of fetched associations, exposed or not.
func (s *Set) Len() int { return len(s.associations) }

// All returns a copy of every fetched association.
func (s *Set) All() []Association {
	out := make([]Association, len(s.associations))
	copy(out, s.associations)
	return out
}

// Exposed returns a copy of the first Limit associations.
func (s *Set) Exposed() []Association {
	n := min(max(s.limit, 0), len(s.associations))
	out := make([]Association, n)
	copy(out, s.associations[:n])
	return out
}

// TotalGrade is the sum of grades over all fetched associations, regardless of limit.
func (s *Set) TotalGrade() float64 { return s.totalGrade }

// String implements fmt.Stringer.
func (s *Set) String() string { return s.fragment }
