package constraints

import "fmt"

// NotSubtypeError reports a failed `L <: R` assertion (spec §7).
type NotSubtypeError struct {
	L, R fmt.Stringer
}

func (e *NotSubtypeError) Error() string {
	return fmt.Sprintf("not a subtype: %s <: %s", e.L, e.R)
}

// NotEqualError reports a failed `L = R` assertion.
type NotEqualError struct {
	L, R fmt.Stringer
}

func (e *NotEqualError) Error() string {
	return fmt.Sprintf("not equal: %s = %s", e.L, e.R)
}

// ConflictingBoundsError reports that a TVar was asked to carry two
// disjoint bounds of the same kind (sub/sup/eq).
type ConflictingBoundsError struct {
	Var      int
	Relation string // "<:", ":>", or "="
	Old, New fmt.Stringer
}

func (e *ConflictingBoundsError) Error() string {
	return fmt.Sprintf("conflicting bounds on t%d: existing %s %s, incoming %s %s",
		e.Var, e.Relation, e.Old, e.Relation, e.New)
}

// MarkConflictError reports that a mark known true was asserted false, or
// vice versa.
type MarkConflictError struct {
	Mark     int
	Wanted   string
	Existing string
}

func (e *MarkConflictError) Error() string {
	return fmt.Sprintf("mark %d conflict: wanted %s, already %s", e.Mark, e.Wanted, e.Existing)
}

// RedefinedAliasError reports define_type on a name already bound in an
// enclosing or the current scope.
type RedefinedAliasError struct {
	Name string
}

func (e *RedefinedAliasError) Error() string {
	return fmt.Sprintf("type alias already defined: %s", e.Name)
}

// UnknownTypeNameError reports ty_from_name on a name with no alias.
type UnknownTypeNameError struct {
	Name string
}

func (e *UnknownTypeNameError) Error() string {
	return fmt.Sprintf("unknown type name: %s", e.Name)
}

// programmer errors: spec §7 says these are never returned, only panicked.

func panicSelfRecursiveMarkResolution(mark int) {
	panic(fmt.Sprintf("self-recursive mark resolution on mark %d", mark))
}

func panicNonLinearMarkDep(mark int, field string) {
	panic(fmt.Sprintf("non-linear mark dependency: mark %d already has a %s target", mark, field))
}

func panicDesyncedImplication(mark int) {
	panic(fmt.Sprintf("desynchronized implication chain at mark %d", mark))
}
