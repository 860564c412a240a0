package scope

import (
	"github.com/funvibe/tyforge/internal/constraints"
	"github.com/funvibe/tyforge/internal/types"
)

// Env holds a reference to a Context and a stack of lexical scopes (spec
// §4.D "Env"). The global scope sits beneath the local stack; at
// construction a single empty local scope is pushed so a local scope
// always exists even at top level.
type Env struct {
	ctx     *constraints.Context
	global  *Scope
	locals  []*Scope
}

// New constructs an Env over ctx with a synthetic global scope (carrying
// a Frame so the top level may `return`) and one empty local scope.
func New(ctx *constraints.Context) *Env {
	return &Env{
		ctx:    ctx,
		global: NewWithFrame(),
		locals: []*Scope{New()},
	}
}

// Context returns the constraint store this Env is bound to.
func (e *Env) Context() *constraints.Context { return e.ctx }

func (e *Env) top() *Scope { return e.locals[len(e.locals)-1] }

// Enter pushes s onto the local scope stack (spec §4.D "enter(scope)").
func (e *Env) Enter(s *Scope) { e.locals = append(e.locals, s) }

// Leave pops the topmost local scope. It never pops the bottom local
// scope (spec §4.D: "leave() must leave at least the bottom local scope
// in place").
func (e *Env) Leave() {
	if len(e.locals) <= 1 {
		return
	}
	e.locals = e.locals[:len(e.locals)-1]
}

// GetLocalVar searches the local scope stack top-down, without falling
// back to the global scope (spec §4.D "get_local_var").
func (e *Env) GetLocalVar(name string) (Slot, bool) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if slot, ok := e.locals[i].get(name); ok {
			return *slot, true
		}
	}
	return Slot{}, false
}

// GetVar searches the local scope stack, then falls back to the global
// scope (spec §4.D "get_var").
func (e *Env) GetVar(name string) (Slot, bool) {
	if slot, ok := e.GetLocalVar(name); ok {
		return slot, true
	}
	if slot, ok := e.global.get(name); ok {
		return *slot, true
	}
	return Slot{}, false
}

// AddLocalVar inserts slot into the topmost local scope. If adapt is
// true, slot is first wrapped into a fresh assignable slot with an
// associated mark (spec §4.D "add_local_var").
func (e *Env) AddLocalVar(name string, slot Slot, adapt bool) {
	if adapt {
		slot = Adapt(e.ctx, slot)
	}
	e.top().set(name, slot)
}

// AssignToVar implements spec §4.D "assign_to_var": if a prior binding
// exists anywhere on the stack or globally, the assignment must be
// accepted by the existing slot (its current type must accept the
// incoming type as a subtype); if none exists, a new global binding is
// created as an assignable slot.
func (e *Env) AssignToVar(name string, incoming Slot) error {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if existing, ok := e.locals[i].get(name); ok {
			if err := e.ctx.AssertSub(incoming.Ty, existing.Ty); err != nil {
				return err
			}
			e.markAssigned(existing)
			return nil
		}
	}
	if existing, ok := e.global.get(name); ok {
		if err := e.ctx.AssertSub(incoming.Ty, existing.Ty); err != nil {
			return err
		}
		e.markAssigned(existing)
		return nil
	}
	assignable := Adapt(e.ctx, incoming)
	e.global.set(name, assignable)
	return nil
}

func (e *Env) markAssigned(s *Slot) {
	if s.Assignable && s.Assigned != nil {
		_ = e.ctx.AssertMarkTrue(*s.Assigned)
	}
}

// AssumeVar unconditionally overwrites the innermost matching binding (or
// creates a global one), used for user type annotations (spec §4.D
// "assume_var").
func (e *Env) AssumeVar(name string, slot Slot) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if _, ok := e.locals[i].get(name); ok {
			e.locals[i].set(name, slot)
			return
		}
	}
	e.global.set(name, slot)
}

// GetFrame walks the scope stack to the nearest frame-bearing scope. The
// global scope always has a frame, so this never fails (spec §4.D
// "get_frame").
func (e *Env) GetFrame() *Frame {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if e.locals[i].frame != nil {
			return e.locals[i].frame
		}
	}
	return e.global.frame
}

// GetFrameMut is GetFrame under a name matching the spec's mutable
// accessor; Go's pointer semantics make the two identical.
func (e *Env) GetFrameMut() *Frame { return e.GetFrame() }

// GetVararg delegates to the current frame (spec §4.D "get_vararg").
func (e *Env) GetVararg() (types.TySeq, bool) {
	f := e.GetFrame()
	if f.Vararg == nil {
		return types.TySeq{}, false
	}
	return *f.Vararg, true
}

// GetNamedType looks up a scope-lexical type alias (spec §4.D
// "get_named_type").
func (e *Env) GetNamedType(name string) (types.T, bool) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if t, ok := e.locals[i].aliases[name]; ok {
			return t, true
		}
	}
	if t, ok := e.global.aliases[name]; ok {
		return t, true
	}
	return nil, false
}

// DefineType defines a scope-lexical type alias in the topmost local
// scope, failing if the name is already defined in an enclosing scope or
// the current scope (spec §4.D "define_type").
func (e *Env) DefineType(name string, t types.T) error {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if e.locals[i].hasAlias(name) {
			return &constraints.RedefinedAliasError{Name: name}
		}
	}
	if e.global.hasAlias(name) {
		return &constraints.RedefinedAliasError{Name: name}
	}
	e.top().aliases[name] = t
	return nil
}

// TyFromName resolves a type name through the scope stack (the
// TypeResolver capability of spec §6), failing with UnknownTypeNameError
// on a miss.
func (e *Env) TyFromName(name string) (types.T, error) {
	if t, ok := e.GetNamedType(name); ok {
		return t, nil
	}
	return nil, &constraints.UnknownTypeNameError{Name: name}
}
