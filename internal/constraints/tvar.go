package constraints

import "github.com/funvibe/tyforge/internal/types"

func (c *Context) subBound(v types.TVar) types.T { return c.sub.Get(v.ID).ty }
func (c *Context) supBound(v types.TVar) types.T { return c.sup.Get(v.ID).ty }
func (c *Context) eqBound(v types.TVar) types.T  { return c.eq.Get(v.ID).ty }

func (c *Context) setSubBound(v types.TVar, t types.T) { c.sub.Set(v.ID, &boundSlot{ty: t}) }
func (c *Context) setSupBound(v types.TVar, t types.T) { c.sup.Set(v.ID, &boundSlot{ty: t}) }
func (c *Context) setEqBound(v types.TVar, t types.T)  { c.eq.Set(v.ID, &boundSlot{ty: t}) }

func sameType(a, b types.T) bool {
	if isTrivialBound(a) != isTrivialBound(b) {
		return false
	}
	if isTrivialBound(a) {
		return true
	}
	return a.String() == b.String()
}

// AssertTVarSub records `v <: t` (spec §4.C "assert_tvar_sub").
func (c *Context) AssertTVarSub(v types.TVar, t types.T) error {
	if e := c.eqBound(v); !isTrivialBound(e) {
		return c.AssertSub(e, t)
	}
	if u := c.subBound(v); !isTrivialBound(u) && !sameType(u, t) {
		if err := c.AssertSub(u, t); err != nil {
			return err
		}
	}
	if l := c.supBound(v); !isTrivialBound(l) {
		if err := c.AssertSub(l, t); err != nil {
			return err
		}
	}
	c.setSubBound(v, t)
	return nil
}

// AssertTVarSup records `t <: v` (spec §4.C "assert_tvar_sup", symmetric to
// AssertTVarSub).
func (c *Context) AssertTVarSup(v types.TVar, t types.T) error {
	if e := c.eqBound(v); !isTrivialBound(e) {
		return c.AssertSub(t, e)
	}
	if l := c.supBound(v); !isTrivialBound(l) && !sameType(l, t) {
		if err := c.AssertSub(l, t); err != nil {
			return err
		}
	}
	if u := c.subBound(v); !isTrivialBound(u) {
		if err := c.AssertSub(t, u); err != nil {
			return err
		}
	}
	c.setSupBound(v, t)
	return nil
}

// AssertTVarEq records `v = t`. If a prior equality bound existed, the old
// and new bounds must themselves be equal; otherwise the new bound
// propagates to both the upper and lower partitions (spec §4.C
// "assert_tvar_eq").
func (c *Context) AssertTVarEq(v types.TVar, t types.T) error {
	if e := c.eqBound(v); !isTrivialBound(e) {
		if err := c.AssertEq(e, t); err != nil {
			return err
		}
		return nil
	}
	if u := c.subBound(v); !isTrivialBound(u) {
		if err := c.AssertSub(t, u); err != nil {
			return err
		}
	}
	if l := c.supBound(v); !isTrivialBound(l) {
		if err := c.AssertSub(l, t); err != nil {
			return err
		}
	}
	c.setEqBound(v, t)
	return nil
}

// AssertTVarSubTVar asserts `v1 <: v2` between two free variables by
// hopping v1 into the sub partition toward v2 and v2 into the sup
// partition toward v1, unless the two are already known-equal (spec
// §4.C "assert_tvar_sub_tvar").
func (c *Context) AssertTVarSubTVar(v1, v2 types.TVar) error {
	if c.eq.Connected(v1.ID, v2.ID) {
		return nil
	}
	if err := c.mergePartition(c.sub, v1.ID, v2.ID, "<:"); err != nil {
		return err
	}
	if err := c.mergePartition(c.sup, v2.ID, v1.ID, ":>"); err != nil {
		return err
	}
	return nil
}

// AssertTVarEqTVar asserts `v1 = v2` by unioning their eq-partition
// representatives only; sub/sup are left as is since eq is always
// consulted first (spec §4.C "assert_tvar_eq_tvar").
func (c *Context) AssertTVarEqTVar(v1, v2 types.TVar) error {
	return c.mergePartition(c.eq, v1.ID, v2.ID, "=")
}

// mergePartition unions a and b within uf, merging their bound payloads
// per the "bounds merger during union" rule (spec §4.C): at most one side
// may carry a non-trivial bound; if both do and they differ, the merge
// fails and the partition is left untouched.
func (c *Context) mergePartition(uf interface {
	Find(int) int
	Union(int, int) int
	Get(int) *boundSlot
	Set(int, *boundSlot)
}, a, b int, relation string) error {
	if uf.Find(a) == uf.Find(b) {
		return nil
	}
	ta := uf.Get(a).ty
	tb := uf.Get(b).ty

	var merged types.T
	switch {
	case isTrivialBound(ta):
		merged = tb
	case isTrivialBound(tb):
		merged = ta
	case sameType(ta, tb):
		merged = ta
	default:
		return &ConflictingBoundsError{Var: a, Relation: relation, Old: ta, New: tb}
	}

	root := uf.Union(a, b)
	uf.Set(root, &boundSlot{ty: merged})
	return nil
}

// GetTVarBounds returns (lower, upper) flag summaries for v, consulting
// the eq partition first (spec §4.C "get_tvar_bounds").
func (c *Context) GetTVarBounds(v types.TVar) (lb, ub types.Flags) {
	if e := c.eqBound(v); !isTrivialBound(e) {
		f := e.Flags()
		return f, f
	}
	var lbF, ubF types.Flags
	if l := c.supBound(v); !isTrivialBound(l) {
		lbF = l.Flags()
	}
	if u := c.subBound(v); !isTrivialBound(u) {
		ubF = u.Flags()
	}
	return lbF, ubF
}

// GetTVarExactType returns the eq-bound of v, if any (spec §4.C
// "get_tvar_exact_type"). T is immutable, so the returned value is
// already a safe, detached "owned copy" (spec §5).
func (c *Context) GetTVarExactType(v types.TVar) (types.T, bool) {
	e := c.eqBound(v)
	if isTrivialBound(e) {
		return nil, false
	}
	return e, true
}
