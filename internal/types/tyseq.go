package types

import "strings"

// TySeq is an ordered sequence of types used for multi-value returns and
// varargs: a finite prefix of fixed types plus an optional "rest" type
// representing the tail (spec §3).
type TySeq struct {
	Fixed []T
	Rest  *T // nil if the sequence has no open tail
}

func (s TySeq) String() string {
	parts := make([]string, len(s.Fixed))
	for i, t := range s.Fixed {
		parts[i] = t.String()
	}
	out := strings.Join(parts, ", ")
	if s.Rest != nil {
		if out != "" {
			out += ", "
		}
		out += "..." + (*s.Rest).String()
	}
	return out
}

func (s TySeq) FreeTVars() []TVar {
	var vs []TVar
	for _, t := range s.Fixed {
		vs = append(vs, t.FreeTVars()...)
	}
	if s.Rest != nil {
		vs = append(vs, (*s.Rest).FreeTVars()...)
	}
	return uniqueTVars(vs)
}

// At returns the type at position i, falling back to Rest for positions at
// or beyond len(Fixed), or ok=false if neither exists.
func (s TySeq) At(i int) (T, bool) {
	if i < len(s.Fixed) {
		return s.Fixed[i], true
	}
	if s.Rest != nil {
		return *s.Rest, true
	}
	return nil, false
}

// Len returns the number of fixed (non-rest) components.
func (s TySeq) Len() int { return len(s.Fixed) }

// HasRest reports whether the sequence has an open tail.
func (s TySeq) HasRest() bool { return s.Rest != nil }
