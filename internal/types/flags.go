package types

// Flags is the bitset summary attached to every T, used for fast rejection
// in lattice assertions and for answering bound queries on TVars without
// walking the full structural bound (spec §4.A).
type Flags uint16

const (
	FlagNil Flags = 1 << iota
	FlagTrue
	FlagFalse
	FlagNumber
	FlagInteger // subset of FlagNumber: every integral value also sets FlagNumber
	FlagString
	FlagTable
	FlagFunction
	FlagDynamic
	FlagNone
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Union returns the bitwise union of two flag summaries.
func (f Flags) Union(o Flags) Flags { return f | o }

// Intersect returns the bitwise intersection of two flag summaries.
func (f Flags) Intersect(o Flags) Flags { return f & o }

// IsSubsetOf reports whether every bit in f is also set in o, the flags-only
// fast-reject precondition for f <: o.
func (f Flags) IsSubsetOf(o Flags) bool { return f&^o == 0 }
