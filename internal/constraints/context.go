// Package constraints implements the type-variable/mark constraint store
// (spec §4.C) and the lattice operators that dispatch into it (spec §4.B).
// The two are bundled into one package because they are mutually
// recursive: lattice TVar-handling calls into the store, and the store's
// bound-merge logic calls back into the lattice's AssertSub — mirroring
// how the teacher bundles its own type algebra and unifier into a single
// internal/typesystem package.
package constraints

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/tyforge/internal/types"
	"github.com/funvibe/tyforge/internal/unionfind"
)

// boundSlot holds the (possibly absent) bound recorded for a TVar
// representative in one partition. A nil Ty means "no bound yet" (spec
// §9: None/Dynamic are the trivial bounds, but an utterly unrecorded slot
// is a third, even-more-trivial state that simply hasn't been touched).
type boundSlot struct {
	ty types.T
}

// Context is the constraint store: TVar counters and bound partitions,
// plus the parallel mark store (spec §3, §4.C).
type Context struct {
	nextTVar int
	nextMark int

	sub *unionfind.UnionFind[*boundSlot] // upper bounds: v <: sub(v)
	sup *unionfind.UnionFind[*boundSlot] // lower bounds: sup(v) <: v
	eq  *unionfind.UnionFind[*boundSlot] // tight bounds: v = eq(v)

	marks *unionfind.UnionFind[*markInfo]

	// debugID correlates log lines across a single checking run. It is
	// never consulted for TVar or Mark identity.
	debugID string
}

// NewContext constructs an empty constraint store.
func NewContext() *Context {
	return &Context{
		sub:     unionfind.New[*boundSlot](),
		sup:     unionfind.New[*boundSlot](),
		eq:      unionfind.New[*boundSlot](),
		marks:   unionfind.New[*markInfo](),
		debugID: uuid.NewString(),
	}
}

// DebugID returns the opaque correlation tag for this context's logs.
func (c *Context) DebugID() string { return c.debugID }

func isTrivialBound(t types.T) bool {
	if t == nil {
		return true
	}
	switch t.(type) {
	case types.TNone, types.TDynamic:
		return true
	default:
		return false
	}
}

// LastTVar returns the most recently generated TVar, or false if none has
// been generated yet.
func (c *Context) LastTVar() (types.TVar, bool) {
	if c.nextTVar == 0 {
		return types.TVar{}, false
	}
	return types.TVar{ID: c.nextTVar - 1}, true
}

// GenTVar allocates a fresh type variable with an empty bound in all three
// partitions (spec §4.C: "gen_tvar() → TVar").
func (c *Context) GenTVar() types.TVar {
	id := c.nextTVar
	c.nextTVar++
	subID := c.sub.Create(&boundSlot{})
	supID := c.sup.Create(&boundSlot{})
	eqID := c.eq.Create(&boundSlot{})
	if subID != id || supID != id || eqID != id {
		panic(fmt.Sprintf("internal/constraints: partition indices diverged for tvar %d", id))
	}
	return types.TVar{ID: id}
}
