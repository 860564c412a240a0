package types

// Join implements the structural, never-failing union operator (`|`) over
// concrete shapes (spec §4.B). It is total and context-free: when both
// operands carry a free TVar placeholder, Join arbitrarily keeps the
// first and drops the second rather than unifying them — package
// constraints' lattice Union wraps Join and pre-unifies two distinct TVar
// placeholders through the constraint store (spec §9, "Free-variable
// inside Union") before delegating here, so two TVar slots that reach
// Join through that wrapper are already known-equal. Direct callers of
// Join (FromKind, the scenario type parser, record-to-map field joins)
// get no such unification.
func Join(a, b T) T {
	a, b = Normalize(a), Normalize(b)

	if ba, ok := a.(TBuiltin); ok {
		if bb, ok := b.(TBuiltin); ok && bb.Tag == ba.Tag {
			return Normalize(TBuiltin{Tag: ba.Tag, Base: Join(ba.Base, bb.Base)})
		}
		return Join(ba.Base, b)
	}
	if bb, ok := b.(TBuiltin); ok {
		return Join(a, bb.Base)
	}

	if _, ok := a.(TDynamic); ok {
		return a
	}
	if _, ok := b.(TDynamic); ok {
		return b
	}
	if _, ok := a.(TNone); ok {
		return b
	}
	if _, ok := b.(TNone); ok {
		return a
	}

	out := mergeUnionShape(toUnionShape(a), toUnionShape(b))
	return normalizeUnion(out)
}

// TableJoin implements the per-shape table union rule (spec §4.B Tables).
func TableJoin(a, b TableShape) TableShape {
	if _, ok := a.(TableAll); ok {
		return TableAll{}
	}
	if _, ok := b.(TableAll); ok {
		return TableAll{}
	}
	if _, ok := a.(TableEmpty); ok {
		return b
	}
	if _, ok := b.(TableEmpty); ok {
		return a
	}

	switch av := a.(type) {
	case TableTuple:
		if bv, ok := b.(TableTuple); ok {
			n := len(av.Elems)
			if len(bv.Elems) > n {
				n = len(bv.Elems)
			}
			elems := make([]T, n)
			for i := 0; i < n; i++ {
				ea := elemOr(av.Elems, i, TNil{})
				eb := elemOr(bv.Elems, i, TNil{})
				elems[i] = Join(ea, eb)
			}
			return TableTuple{Elems: elems}
		}
	case TableArray:
		if bv, ok := b.(TableArray); ok {
			return TableArray{Elem: Join(av.Elem, bv.Elem)}
		}
	case TableRecord:
		if bv, ok := b.(TableRecord); ok {
			fields := make(map[string]T)
			for k, t := range av.Fields {
				fields[k] = t
			}
			for k, t := range bv.Fields {
				if existing, ok := fields[k]; ok {
					fields[k] = Join(existing, t)
				} else {
					fields[k] = Join(TNil{}, t)
				}
			}
			for k := range av.Fields {
				if _, ok := bv.Fields[k]; !ok {
					fields[k] = Join(av.Fields[k], TNil{})
				}
			}
			return TableRecord{Fields: fields}
		}
	case TableMap:
		if bv, ok := b.(TableMap); ok {
			return TableMap{Key: Join(av.Key, bv.Key), Value: Join(av.Value, bv.Value)}
		}
	}

	// Shapes don't match structurally: widen to the unrefined table shape
	// rather than attempt a lossy cross-shape merge (documented in
	// DESIGN.md as an implementation decision).
	return TableAll{}
}

func elemOr(elems []T, i int, fallback T) T {
	if i < len(elems) {
		return elems[i]
	}
	return fallback
}
