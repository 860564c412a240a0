package scope

import (
	"github.com/funvibe/tyforge/internal/constraints"
	"github.com/funvibe/tyforge/internal/types"
)

// Slot is a value type together with assignability metadata, used by Env
// to arbitrate assignments (spec GLOSSARY "Slot").
//
// A non-assignable Slot is a plain binding (e.g. a function parameter): it
// can be read but Env.AssignToVar on it is rejected by the caller's own
// discipline, since nothing re-widens it. An assignable Slot additionally
// carries a Mark that models "this variable has been assigned at least
// once" (set true when AssignToVar targets it; AssumeVar replaces the
// slot without touching the mark).
type Slot struct {
	Ty         types.T
	Assignable bool
	Assigned   *constraints.Mark
}

// NewSlot wraps a plain, non-assignable binding.
func NewSlot(ty types.T) Slot {
	return Slot{Ty: ty}
}

// Adapt wraps slot in a fresh assignable slot with an associated mark
// (spec §4.D "add_local_var": "If adapt is true, the incoming slot is
// wrapped in a fresh assignable slot with an associated mark").
func Adapt(ctx *constraints.Context, s Slot) Slot {
	m := ctx.GenMark()
	return Slot{Ty: s.Ty, Assignable: true, Assigned: &m}
}
