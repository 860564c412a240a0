package types

import "sort"

// IntSet is a small, immutable, ordered set of integers used by Numbers'
// Some(...) variant. Zero value is the empty set, which normalization
// treats as unreachable (see Normalize).
type IntSet struct {
	vals []int64
}

// NewIntSet builds a de-duplicated, sorted IntSet from the given values.
func NewIntSet(vs ...int64) IntSet {
	seen := make(map[int64]bool, len(vs))
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return IntSet{vals: out}
}

func (s IntSet) Len() int          { return len(s.vals) }
func (s IntSet) Values() []int64   { return append([]int64(nil), s.vals...) }
func (s IntSet) Contains(v int64) bool {
	_, ok := sort.Find(len(s.vals), func(i int) int {
		switch {
		case s.vals[i] < v:
			return 1
		case s.vals[i] > v:
			return -1
		default:
			return 0
		}
	})
	return ok
}

// Union returns the set union of s and o.
func (s IntSet) Union(o IntSet) IntSet {
	return NewIntSet(append(append([]int64{}, s.vals...), o.vals...)...)
}

// Intersect returns the set intersection of s and o.
func (s IntSet) Intersect(o IntSet) IntSet {
	out := make([]int64, 0)
	for _, v := range s.vals {
		if o.Contains(v) {
			out = append(out, v)
		}
	}
	return NewIntSet(out...)
}

// Equal reports whether s and o contain exactly the same values.
func (s IntSet) Equal(o IntSet) bool {
	if len(s.vals) != len(o.vals) {
		return false
	}
	for i, v := range s.vals {
		if o.vals[i] != v {
			return false
		}
	}
	return true
}

// StringSet is the byte-string analogue of IntSet, used by Strings'
// Some(...) variant.
type StringSet struct {
	vals []string
}

// NewStringSet builds a de-duplicated, sorted StringSet.
func NewStringSet(vs ...string) StringSet {
	seen := make(map[string]bool, len(vs))
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return StringSet{vals: out}
}

func (s StringSet) Len() int        { return len(s.vals) }
func (s StringSet) Values() []string { return append([]string(nil), s.vals...) }

func (s StringSet) Contains(v string) bool {
	i := sort.SearchStrings(s.vals, v)
	return i < len(s.vals) && s.vals[i] == v
}

func (s StringSet) Union(o StringSet) StringSet {
	return NewStringSet(append(append([]string{}, s.vals...), o.vals...)...)
}

func (s StringSet) Intersect(o StringSet) StringSet {
	out := make([]string, 0)
	for _, v := range s.vals {
		if o.Contains(v) {
			out = append(out, v)
		}
	}
	return NewStringSet(out...)
}

func (s StringSet) Equal(o StringSet) bool {
	if len(s.vals) != len(o.vals) {
		return false
	}
	for i, v := range s.vals {
		if o.vals[i] != v {
			return false
		}
	}
	return true
}
