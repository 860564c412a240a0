package scope

import "github.com/funvibe/tyforge/internal/types"

// Frame holds per-function metadata attached to a Scope (spec §3
// "Frame"). A Frame with a nil Return has not yet been constrained;
// ReturnsExact false means the return sequence is still open to widening
// by further `return` statements.
type Frame struct {
	Vararg       *types.TySeq
	Return       *types.TySeq
	ReturnsExact bool
}
