// Package types implements the pure value-type algebra T described in
// spec §3/§4.A: a tagged variant over dynamic/none/singletons/numbers/
// strings/tables/functions/type-variables/builtin-wrappers/unions, plus
// flags, predicates, normalization and debug formatting.
//
// Every T value is treated as immutable once constructed: lattice
// operations build and return new values rather than mutating existing
// ones, so sharing a T by reference is always safe and no explicit Clone
// method is needed (spec §5's "cheap to clone" is satisfied by this
// immutability discipline rather than by deep-copying on read).
package types

import (
	"fmt"

	"github.com/funvibe/tyforge/internal/config"
)

// T is the interface implemented by every value-type variant.
type T interface {
	fmt.Stringer
	isT()
	// Flags returns the bitset summary used for fast structural rejection.
	Flags() Flags
	// FreeTVars returns the (de-duplicated) free type variables mentioned
	// anywhere in this type.
	FreeTVars() []TVar
}

// TDynamic is the permissive "?" — both top and bottom for subtyping.
type TDynamic struct{}

func (TDynamic) isT()            {}
func (TDynamic) String() string  { return "?" }
func (TDynamic) Flags() Flags    { return FlagDynamic }
func (TDynamic) FreeTVars() []TVar { return nil }

// TNone is the bottom type; uninhabited.
type TNone struct{}

func (TNone) isT()            {}
func (TNone) String() string  { return "none" }
func (TNone) Flags() Flags    { return FlagNone }
func (TNone) FreeTVars() []TVar { return nil }

// TNil is the singleton nil literal type.
type TNil struct{}

func (TNil) isT()            {}
func (TNil) String() string  { return "nil" }
func (TNil) Flags() Flags    { return FlagNil }
func (TNil) FreeTVars() []TVar { return nil }

// TBoolean is the unrefined boolean (true or false, not yet narrowed).
type TBoolean struct{}

func (TBoolean) isT()            {}
func (TBoolean) String() string  { return "boolean" }
func (TBoolean) Flags() Flags    { return FlagTrue | FlagFalse }
func (TBoolean) FreeTVars() []TVar { return nil }

// TTrue is the singleton `true` literal type.
type TTrue struct{}

func (TTrue) isT()            {}
func (TTrue) String() string  { return "true" }
func (TTrue) Flags() Flags    { return FlagTrue }
func (TTrue) FreeTVars() []TVar { return nil }

// TFalse is the singleton `false` literal type.
type TFalse struct{}

func (TFalse) isT()            {}
func (TFalse) String() string  { return "false" }
func (TFalse) Flags() Flags    { return FlagFalse }
func (TFalse) FreeTVars() []TVar { return nil }

// TVar is an opaque, non-negative type-variable identity. The zero TVar is
// reserved for the top-level return placeholder (spec §3).
type TVar struct {
	ID int
}

func (v TVar) isT()           {}
func (v TVar) Flags() Flags   { return FlagDynamic } // unresolved: treat as permissive until bound
func (v TVar) FreeTVars() []TVar { return []TVar{v} }

func (v TVar) String() string {
	if config.IsTestMode || config.IsDebugMode {
		return "t?"
	}
	return fmt.Sprintf("t%d", v.ID)
}

// TBuiltin is an annotated wrapper around a base type, carrying a tag that
// identifies which builtin interpretation applies (e.g. a nominal alias).
// Two Builtins with the same tag compose (see lattice dispatch rule 1);
// otherwise the wrapper is transparent to structural operations.
type TBuiltin struct {
	Tag  string
	Base T
}

func (b TBuiltin) isT()         {}
func (b TBuiltin) Flags() Flags { return b.Base.Flags() }
func (b TBuiltin) FreeTVars() []TVar { return b.Base.FreeTVars() }
func (b TBuiltin) String() string {
	return fmt.Sprintf("%s<%s>", b.Tag, b.Base.String())
}

func uniqueTVars(vs []TVar) []TVar {
	seen := make(map[int]bool, len(vs))
	out := make([]TVar, 0, len(vs))
	for _, v := range vs {
		if !seen[v.ID] {
			seen[v.ID] = true
			out = append(out, v)
		}
	}
	return out
}
