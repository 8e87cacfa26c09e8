package visitor

import "encoding/json"

// StringSet is an insertion-order-preserving set of strings. The runtime
// representation keeps both a membership index and the original insertion
// order; the storage representation is a plain JSON list, so the on-disk
// document stays readable and compatible with the historic format.
//
// The zero value is an empty set ready for use.
type StringSet struct {
	index map[string]struct{}
	order []string
}

// NewStringSet creates a set containing the given values, deduplicated in
// first-seen order.
func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value and reports whether it was not already present.
func (s *StringSet) Add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Contains reports membership.
func (s StringSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct values.
func (s StringSet) Len() int {
	return len(s.order)
}

// Values returns the values in insertion order as a fresh slice.
func (s StringSet) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s StringSet) clone() StringSet {
	return NewStringSet(s.order...)
}

// MarshalJSON serializes the set as an ordered list.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.order)
}

// UnmarshalJSON rebuilds the set from a list, deduplicating defensively in
// case the document was edited by hand.
func (s *StringSet) UnmarshalJSON(b []byte) error {
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
