package scope

import "github.com/funvibe/tyforge/internal/types"

// Scope is a name→slot mapping plus a name→type-alias mapping and an
// optional Frame (spec §3 "Scope"). Scopes are value-like in the sense
// that the driver decides when to push and pop them; Go represents that
// as pointer identity on the heap rather than copying a value type,
// matching how the teacher's own Environment nodes are heap-allocated
// per block/call.
type Scope struct {
	vars    map[string]*Slot
	aliases map[string]types.T
	frame   *Frame
}

// New returns an empty scope with no frame.
func New() *Scope {
	return &Scope{vars: make(map[string]*Slot), aliases: make(map[string]types.T)}
}

// NewWithFrame returns an empty scope carrying a fresh Frame (used for
// the global scope, and for any scope a function body enters).
func NewWithFrame() *Scope {
	s := New()
	s.frame = &Frame{}
	return s
}

func (s *Scope) get(name string) (*Slot, bool) {
	slot, ok := s.vars[name]
	return slot, ok
}

func (s *Scope) set(name string, slot Slot) {
	cp := slot
	s.vars[name] = &cp
}

func (s *Scope) hasAlias(name string) bool {
	_, ok := s.aliases[name]
	return ok
}
