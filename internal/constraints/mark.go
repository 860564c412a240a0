package constraints

import "github.com/funvibe/tyforge/internal/types"

// Mark is an opaque identity for a boolean proposition over types (spec
// §3).
type Mark struct {
	ID int
}

// MarkValue is the terminal state of a mark (spec §3).
type MarkValue int

const (
	MarkUnknown MarkValue = iota
	MarkTrue
	MarkFalse
	markInvalid // transient "currently being resolved" sentinel; never observed externally.
)

func (v MarkValue) String() string {
	switch v {
	case MarkTrue:
		return "true"
	case MarkFalse:
		return "false"
	case markInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// relKind distinguishes the two pending-constraint relations a mark can
// carry (spec §3 "constraints").
type relKind int

const (
	relEq relKind = iota
	relSup
)

type pendingConstraint struct {
	rel   relKind
	other types.T
}

// markDeps holds the dependency graph attached to an Unknown mark (spec
// §3 "Mark dependencies").
type markDeps struct {
	follows  *int // at most one mark this one implies, by id
	precedes *int // at most one mark that implies this one, by id

	base        types.T // fixed for the mark's lifetime once first set
	baseSet     bool
	constraints []pendingConstraint
}

// markInfo is the payload stored at a mark's union-find representative.
type markInfo struct {
	value MarkValue
	deps  *markDeps // only meaningful while value == MarkUnknown
}

// GenMark allocates a fresh mark in the Unknown state (spec §4.C
// "gen_mark").
func (c *Context) GenMark() Mark {
	id := c.nextMark
	c.nextMark++
	got := c.marks.Create(&markInfo{value: MarkUnknown, deps: &markDeps{}})
	if got != id {
		panic("internal/constraints: mark partition index diverged")
	}
	return Mark{ID: id}
}

func (c *Context) markValue(m Mark) MarkValue { return c.marks.Get(m.ID).value }

// AssertMarkTrue sets m to True, discharging any pending dependencies
// (spec §4.C "assert_mark_true").
func (c *Context) AssertMarkTrue(m Mark) error {
	info := c.marks.Get(m.ID)
	switch info.value {
	case MarkTrue:
		return nil
	case MarkFalse:
		return &MarkConflictError{Mark: m.ID, Wanted: "true", Existing: "false"}
	case markInvalid:
		panicSelfRecursiveMarkResolution(m.ID)
	}

	deps := info.deps
	c.marks.Set(m.ID, &markInfo{value: markInvalid})

	if deps != nil {
		if deps.follows != nil {
			if err := c.AssertMarkTrue(Mark{ID: *deps.follows}); err != nil {
				c.marks.Set(m.ID, info)
				return err
			}
		}
		if deps.baseSet {
			for _, pc := range deps.constraints {
				var err error
				switch pc.rel {
				case relEq:
					err = c.AssertEq(deps.base, pc.other)
				case relSup:
					err = c.AssertSub(pc.other, deps.base)
				}
				if err != nil {
					c.marks.Set(m.ID, info)
					return err
				}
			}
		}
	}

	c.marks.Set(m.ID, &markInfo{value: MarkTrue})
	return nil
}

// AssertMarkFalse sets m to False, discharging precedes (spec §4.C
// "assert_mark_false").
func (c *Context) AssertMarkFalse(m Mark) error {
	info := c.marks.Get(m.ID)
	switch info.value {
	case MarkFalse:
		return nil
	case MarkTrue:
		return &MarkConflictError{Mark: m.ID, Wanted: "false", Existing: "true"}
	case markInvalid:
		panicSelfRecursiveMarkResolution(m.ID)
	}

	deps := info.deps
	c.marks.Set(m.ID, &markInfo{value: markInvalid})

	if deps != nil && deps.precedes != nil {
		if err := c.AssertMarkFalse(Mark{ID: *deps.precedes}); err != nil {
			c.marks.Set(m.ID, info)
			return err
		}
	}

	c.marks.Set(m.ID, &markInfo{value: MarkFalse})
	return nil
}

// AssertMarkEq unifies the partitions of m1 and m2 per the cross-product
// of their prior values (spec §4.C "assert_mark_eq").
func (c *Context) AssertMarkEq(m1, m2 Mark) error {
	if c.marks.Connected(m1.ID, m2.ID) {
		return nil
	}
	v1 := c.markValue(m1)
	v2 := c.markValue(m2)

	switch {
	case v1 == MarkTrue && v2 == MarkTrue, v1 == MarkFalse && v2 == MarkFalse:
		c.marks.Union(m1.ID, m2.ID)
		return nil
	case (v1 == MarkTrue && v2 == MarkFalse) || (v1 == MarkFalse && v2 == MarkTrue):
		return &MarkConflictError{Mark: m1.ID, Wanted: v1.String(), Existing: v2.String()}
	case v1 == MarkTrue || v1 == MarkFalse:
		// known(v1) ⋈ unknown(v2): discharge v2's deps with the known value.
		return c.adoptKnown(m1, m2, v1)
	case v2 == MarkTrue || v2 == MarkFalse:
		return c.adoptKnown(m2, m1, v2)
	default:
		return c.mergeUnknown(m1, m2)
	}
}

// adoptKnown discharges unknown's deps with known's settled value, then
// unions the two partitions.
func (c *Context) adoptKnown(known, unknown Mark, value MarkValue) error {
	var err error
	if value == MarkTrue {
		err = c.AssertMarkTrue(unknown)
	} else {
		err = c.AssertMarkFalse(unknown)
	}
	if err != nil {
		return err
	}
	c.marks.Union(known.ID, unknown.ID)
	return nil
}

// mergeUnknown merges two Unknown marks' dependency structures, first
// deleting any self-reference between the two roots, then requiring
// linearity (capacity one) on each of follows/precedes (spec §4.C
// "Unknown ⋈ Unknown").
func (c *Context) mergeUnknown(m1, m2 Mark) error {
	d1 := c.marks.Get(m1.ID).deps
	d2 := c.marks.Get(m2.ID).deps

	if d1.follows != nil && *d1.follows == m2.ID {
		d1.follows = nil
	}
	if d1.precedes != nil && *d1.precedes == m2.ID {
		d1.precedes = nil
	}
	if d2.follows != nil && *d2.follows == m1.ID {
		d2.follows = nil
	}
	if d2.precedes != nil && *d2.precedes == m1.ID {
		d2.precedes = nil
	}

	merged := &markDeps{}
	switch {
	case d1.follows == nil:
		merged.follows = d2.follows
	case d2.follows == nil:
		merged.follows = d1.follows
	default:
		panicNonLinearMarkDep(m1.ID, "follows")
	}
	switch {
	case d1.precedes == nil:
		merged.precedes = d2.precedes
	case d2.precedes == nil:
		merged.precedes = d1.precedes
	default:
		panicNonLinearMarkDep(m1.ID, "precedes")
	}

	if d1.baseSet && d2.baseSet {
		if d1.base.String() != d2.base.String() {
			panicDesyncedImplication(m1.ID)
		}
		merged.base, merged.baseSet = d1.base, true
		merged.constraints = append(append([]pendingConstraint{}, d1.constraints...), d2.constraints...)
	} else if d1.baseSet {
		merged.base, merged.baseSet, merged.constraints = d1.base, true, d1.constraints
	} else if d2.baseSet {
		merged.base, merged.baseSet, merged.constraints = d2.base, true, d2.constraints
	}

	root := c.marks.Union(m1.ID, m2.ID)
	c.marks.Set(root, &markInfo{value: MarkUnknown, deps: merged})

	c.retargetImplications(m1.ID, root)
	c.retargetImplications(m2.ID, root)
	return nil
}

// retargetImplications rewrites any mark still pointing at old via
// follows/precedes to point at root instead (spec §4.C: "any third mark
// still pointing at either merged root ... must be updated").
func (c *Context) retargetImplications(old, root int) {
	if old == root {
		return
	}
	for i := 0; i < c.marks.Len(); i++ {
		info := c.marks.Get(i)
		if info.deps == nil {
			continue
		}
		if info.deps.follows != nil && *info.deps.follows == old {
			r := root
			info.deps.follows = &r
		}
		if info.deps.precedes != nil && *info.deps.precedes == old {
			r := root
			info.deps.precedes = &r
		}
	}
}

// AssertMarkImply records `m1 true ⇒ m2 true` (spec §4.C
// "assert_mark_imply").
func (c *Context) AssertMarkImply(m1, m2 Mark) error {
	if c.marks.Connected(m1.ID, m2.ID) {
		return nil
	}
	v1 := c.markValue(m1)
	v2 := c.markValue(m2)

	switch {
	case v1 == MarkTrue && v2 == MarkTrue:
		return nil
	case v1 == MarkTrue && v2 == MarkFalse:
		return &MarkConflictError{Mark: m2.ID, Wanted: "true (implied)", Existing: "false"}
	case v1 == MarkTrue && v2 == MarkUnknown:
		return c.AssertMarkTrue(m2)
	case v1 == MarkFalse, v2 == MarkTrue:
		return nil
	case v2 == MarkFalse:
		return c.AssertMarkFalse(m1)
	default: // both Unknown
		d1 := c.marks.Get(m1.ID).deps
		d2 := c.marks.Get(m2.ID).deps
		if d1.follows != nil && *d1.follows != m2.ID {
			panicNonLinearMarkDep(m1.ID, "follows")
		}
		if d2.precedes != nil && *d2.precedes != m1.ID {
			panicNonLinearMarkDep(m2.ID, "precedes")
		}
		target2 := m2.ID
		target1 := m1.ID
		d1.follows = &target2
		d2.precedes = &target1
		return nil
	}
}

// AssertMarkRequireEq appends a deferred `base = other` obligation that
// activates when m becomes true (spec §4.C "assert_mark_require", rel=Eq).
func (c *Context) AssertMarkRequireEq(m Mark, base, other types.T) error {
	return c.assertMarkRequire(m, base, relEq, other)
}

// AssertMarkRequireSup appends a deferred `other <: base` obligation that
// activates when m becomes true (rel=Sup).
func (c *Context) AssertMarkRequireSup(m Mark, base, other types.T) error {
	return c.assertMarkRequire(m, base, relSup, other)
}

func (c *Context) assertMarkRequire(m Mark, base types.T, rel relKind, other types.T) error {
	switch c.markValue(m) {
	case MarkTrue:
		if rel == relEq {
			return c.AssertEq(base, other)
		}
		return c.AssertSub(other, base)
	case MarkFalse:
		return nil
	default:
		deps := c.marks.Get(m.ID).deps
		if deps.baseSet && deps.base.String() != base.String() {
			panicDesyncedImplication(m.ID)
		}
		deps.base, deps.baseSet = base, true
		deps.constraints = append(deps.constraints, pendingConstraint{rel: rel, other: other})
		return nil
	}
}
