package constraints

import (
	"go.uber.org/multierr"

	"github.com/funvibe/tyforge/internal/types"
)

// Union implements the lattice `|` operator (spec §4.B). It differs from
// the pure, context-free types.Join only in how it handles two distinct
// free TVar placeholders meeting inside a union: rather than arbitrarily
// keeping one (which is all a pure function can do), it first unifies
// them through the eq partition (spec §9 "Free-variable inside Union")
// so the kept placeholder is provably interchangeable with the dropped
// one, then delegates the rest of the merge to types.Join.
func (c *Context) Union(a, b types.T) types.T {
	if va, ok := asLoneTVar(a); ok {
		if vb, ok := asLoneTVar(b); ok && va.ID != vb.ID {
			_ = c.AssertTVarEqTVar(va, vb)
		}
	}
	return types.Join(a, b)
}

func asLoneTVar(t types.T) (types.TVar, bool) {
	switch v := t.(type) {
	case types.TVar:
		return v, true
	case types.TUnion:
		if v.U.TVar != nil {
			return *v.U.TVar, true
		}
	}
	return types.TVar{}, false
}

// Intersect implements the lattice `&` operator (spec §4.B). Unlike
// Union, no kind-tree caller ever needs a context-free meet, so the
// whole operator lives here rather than being split out to package
// types.
func (c *Context) Intersect(a, b types.T) types.T {
	a, b = types.Normalize(a), types.Normalize(b)

	if ba, ok := a.(types.TBuiltin); ok {
		if bb, ok := b.(types.TBuiltin); ok && bb.Tag == ba.Tag {
			return types.Normalize(types.TBuiltin{Tag: ba.Tag, Base: c.Intersect(ba.Base, bb.Base)})
		}
		return c.Intersect(ba.Base, b)
	}
	if bb, ok := b.(types.TBuiltin); ok {
		return c.Intersect(a, bb.Base)
	}

	if _, ok := a.(types.TDynamic); ok {
		return b
	}
	if _, ok := b.(types.TDynamic); ok {
		return a
	}
	if _, ok := a.(types.TNone); ok {
		return types.TNone{}
	}
	if _, ok := b.(types.TNone); ok {
		return types.TNone{}
	}

	if va, ok := a.(types.TVar); ok {
		_ = c.AssertTVarSub(va, b)
		return va
	}
	if vb, ok := b.(types.TVar); ok {
		_ = c.AssertTVarSub(vb, a)
		return vb
	}

	if bu, ok := b.(types.TUnion); ok {
		if _, ok := a.(types.TUnion); !ok {
			return c.intersectUnion(bu, a)
		}
	}

	switch av := a.(type) {
	case types.TNumbers:
		if bv, ok := b.(types.TNumbers); ok {
			return numberMeet(av.N, bv.N)
		}
		return types.TNone{}
	case types.TStrings:
		if bv, ok := b.(types.TStrings); ok {
			return stringMeet(av.S, bv.S)
		}
		return types.TNone{}
	case types.TTables:
		if bv, ok := b.(types.TTables); ok {
			return types.TTables{TB: c.tableMeet(av.TB, bv.TB)}
		}
		return types.TNone{}
	case types.TFunctions:
		if bv, ok := b.(types.TFunctions); ok {
			return functionMeet(av.F, bv.F)
		}
		return types.TNone{}
	case types.TNil:
		if _, ok := b.(types.TNil); ok {
			return types.TNil{}
		}
		return types.TNone{}
	case types.TTrue:
		if _, ok := b.(types.TTrue); ok {
			return types.TTrue{}
		}
		if _, ok := b.(types.TBoolean); ok {
			return types.TTrue{}
		}
		return types.TNone{}
	case types.TFalse:
		if _, ok := b.(types.TFalse); ok {
			return types.TFalse{}
		}
		if _, ok := b.(types.TBoolean); ok {
			return types.TFalse{}
		}
		return types.TNone{}
	case types.TBoolean:
		switch b.(type) {
		case types.TBoolean:
			return types.TBoolean{}
		case types.TTrue:
			return types.TTrue{}
		case types.TFalse:
			return types.TFalse{}
		}
		return types.TNone{}
	case types.TUnion:
		return c.intersectUnion(av, b)
	default:
		return types.TNone{}
	}
}

// intersectUnion distributes intersection over a union: (a1|a2|...) & b is
// the union of each member's intersection with b.
func (c *Context) intersectUnion(u types.TUnion, b types.T) types.T {
	var acc types.T = types.TNone{}
	if bu, ok := b.(types.TUnion); ok {
		for _, ap := range splitUnion(u.U) {
			for _, bp := range splitUnion(bu.U) {
				acc = c.Union(acc, c.Intersect(ap, bp))
			}
		}
		return acc
	}
	for _, ap := range splitUnion(u.U) {
		acc = c.Union(acc, c.Intersect(ap, b))
	}
	return acc
}

// splitUnion decomposes a UnionShape back into its independent member
// types so a union-of-union intersect can distribute pairwise.
func splitUnion(u types.UnionShape) []types.T {
	var parts []types.T
	if u.HasNil {
		parts = append(parts, types.TNil{})
	}
	if u.HasTrue {
		parts = append(parts, types.TTrue{})
	}
	if u.HasFalse {
		parts = append(parts, types.TFalse{})
	}
	if u.Numbers != nil {
		parts = append(parts, types.TNumbers{N: *u.Numbers})
	}
	if u.Strings != nil {
		parts = append(parts, types.TStrings{S: *u.Strings})
	}
	if u.Tables != nil {
		parts = append(parts, types.TTables{TB: *u.Tables})
	}
	if u.Funcs != nil {
		parts = append(parts, types.TFunctions{F: *u.Funcs})
	}
	if u.TVar != nil {
		parts = append(parts, *u.TVar)
	}
	return parts
}

func numberMeet(a, b types.NumberShape) types.T {
	if _, ok := a.(types.NumAll); ok {
		return types.TNumbers{N: b}
	}
	if _, ok := b.(types.NumAll); ok {
		return types.TNumbers{N: a}
	}
	if _, ok := a.(types.NumInt); ok {
		return types.TNumbers{N: b}
	}
	if _, ok := b.(types.NumInt); ok {
		return types.TNumbers{N: a}
	}
	sa, _ := numberAsSet(a)
	sb, _ := numberAsSet(b)
	inter := sa.Intersect(sb)
	if inter.Len() == 0 {
		return types.TNone{}
	}
	return types.Normalize(types.TNumbers{N: types.NumSome{Values: inter}})
}

func numberAsSet(n types.NumberShape) (types.IntSet, bool) {
	switch v := n.(type) {
	case types.NumOne:
		return types.NewIntSet(v.Value), true
	case types.NumSome:
		return v.Values, true
	default:
		return types.IntSet{}, false
	}
}

func stringMeet(a, b types.StringShape) types.T {
	if _, ok := a.(types.StrAll); ok {
		return types.TStrings{S: b}
	}
	if _, ok := b.(types.StrAll); ok {
		return types.TStrings{S: a}
	}
	sa, _ := stringAsSet(a)
	sb, _ := stringAsSet(b)
	inter := sa.Intersect(sb)
	if inter.Len() == 0 {
		return types.TNone{}
	}
	return types.Normalize(types.TStrings{S: types.StrSome{Values: inter}})
}

func stringAsSet(s types.StringShape) (types.StringSet, bool) {
	switch v := s.(type) {
	case types.StrOne:
		return types.NewStringSet(v.Value), true
	case types.StrSome:
		return v.Values, true
	default:
		return types.StringSet{}, false
	}
}

// tableMeet implements the table intersection rules of spec §4.B: key
// union with per-key meet for records (a None per-key meet collapses the
// whole record to Empty), elementwise meet for tuples/arrays/maps, and
// Empty as the absorbing identity since it is a subtype of every table
// shape.
func (c *Context) tableMeet(a, b types.TableShape) types.TableShape {
	if _, ok := a.(types.TableAll); ok {
		return b
	}
	if _, ok := b.(types.TableAll); ok {
		return a
	}
	if _, ok := a.(types.TableEmpty); ok {
		return types.TableEmpty{}
	}
	if _, ok := b.(types.TableEmpty); ok {
		return types.TableEmpty{}
	}

	switch av := a.(type) {
	case types.TableTuple:
		if bv, ok := b.(types.TableTuple); ok {
			if len(av.Elems) != len(bv.Elems) {
				return types.TableEmpty{}
			}
			elems := make([]types.T, len(av.Elems))
			for i := range av.Elems {
				elems[i] = c.Intersect(av.Elems[i], bv.Elems[i])
				if types.IsNone(elems[i]) {
					return types.TableEmpty{}
				}
			}
			return types.TableTuple{Elems: elems}
		}
	case types.TableArray:
		if bv, ok := b.(types.TableArray); ok {
			return types.TableArray{Elem: c.Intersect(av.Elem, bv.Elem)}
		}
	case types.TableRecord:
		if bv, ok := b.(types.TableRecord); ok {
			fields := make(map[string]types.T)
			for k, t := range av.Fields {
				if other, ok := bv.Fields[k]; ok {
					m := c.Intersect(t, other)
					if types.IsNone(m) {
						return types.TableEmpty{}
					}
					fields[k] = m
				} else {
					fields[k] = t
				}
			}
			for k, t := range bv.Fields {
				if _, ok := av.Fields[k]; !ok {
					fields[k] = t
				}
			}
			return types.TableRecord{Fields: fields}
		}
	case types.TableMap:
		if bv, ok := b.(types.TableMap); ok {
			key := c.Intersect(av.Key, bv.Key)
			val := c.Intersect(av.Value, bv.Value)
			if types.IsNone(key) || types.IsNone(val) {
				return types.TableEmpty{}
			}
			return types.TableMap{Key: key, Value: val}
		}
	}

	// Mismatched shape kinds: only the empty table can inhabit both.
	return types.TableEmpty{}
}

func functionMeet(a, b types.FunctionShape) types.T {
	if _, ok := a.(types.FuncAll); ok {
		return types.TFunctions{F: b}
	}
	if _, ok := b.(types.FuncAll); ok {
		return types.TFunctions{F: a}
	}
	fa, _ := types.AsMulti(a)
	fb, _ := types.AsMulti(b)
	merged := append(append([]types.Function{}, fa...), fb...)
	return types.Normalize(types.TFunctions{F: types.FuncMulti{Fns: merged}})
}

// AssertSub implements `a <: b` (spec §4.B).
func (c *Context) AssertSub(a, b types.T) error {
	a, b = types.Normalize(a), types.Normalize(b)

	if ba, ok := a.(types.TBuiltin); ok {
		if bb, ok := b.(types.TBuiltin); ok && bb.Tag == ba.Tag {
			return c.AssertSub(ba.Base, bb.Base)
		}
		return c.AssertSub(ba.Base, b)
	}
	if bb, ok := b.(types.TBuiltin); ok {
		return c.AssertSub(a, bb.Base)
	}

	if _, ok := a.(types.TDynamic); ok {
		return nil
	}
	if _, ok := b.(types.TDynamic); ok {
		return nil
	}
	if _, ok := a.(types.TNone); ok {
		return nil
	}
	if _, ok := b.(types.TNone); ok {
		return &NotSubtypeError{L: a, R: b}
	}

	if va, ok := a.(types.TVar); ok {
		return c.AssertTVarSub(va, b)
	}
	if vb, ok := b.(types.TVar); ok {
		return c.AssertTVarSup(vb, a)
	}

	if bu, ok := b.(types.TUnion); ok {
		// spec §9 open question 1: conservative failure when b's union
		// carries a free TVar slot — we never guess which arm to bind.
		if bu.U.TVar != nil {
			return &NotSubtypeError{L: a, R: b}
		}
		if au, ok := a.(types.TUnion); ok {
			return multierr.Combine(
				assertSubEachSlot(c, au.U, bu.U)...,
			)
		}
		for _, member := range splitUnion(bu.U) {
			if err := c.AssertSub(a, member); err == nil {
				return nil
			}
		}
		return &NotSubtypeError{L: a, R: b}
	}
	if au, ok := a.(types.TUnion); ok {
		for _, member := range splitUnion(au.U) {
			if err := c.AssertSub(member, b); err != nil {
				return err
			}
		}
		return nil
	}

	switch av := a.(type) {
	case types.TNil:
		if _, ok := b.(types.TNil); ok {
			return nil
		}
	case types.TTrue:
		if _, ok := b.(types.TTrue); ok {
			return nil
		}
		if _, ok := b.(types.TBoolean); ok {
			return nil
		}
	case types.TFalse:
		if _, ok := b.(types.TFalse); ok {
			return nil
		}
		if _, ok := b.(types.TBoolean); ok {
			return nil
		}
	case types.TBoolean:
		if _, ok := b.(types.TBoolean); ok {
			return nil
		}
	case types.TNumbers:
		if bv, ok := b.(types.TNumbers); ok {
			if numberSubset(av.N, bv.N) {
				return nil
			}
		}
	case types.TStrings:
		if bv, ok := b.(types.TStrings); ok {
			if stringSubset(av.S, bv.S) {
				return nil
			}
		}
	case types.TTables:
		if bv, ok := b.(types.TTables); ok {
			return c.assertTableSub(av.TB, bv.TB)
		}
	case types.TFunctions:
		if bv, ok := b.(types.TFunctions); ok {
			return c.assertFunctionSub(av.F, bv.F)
		}
	}
	return &NotSubtypeError{L: a, R: b}
}

func assertSubEachSlot(c *Context, a, b types.UnionShape) []error {
	var errs []error
	for _, ap := range splitUnion(a) {
		if err := c.AssertSub(ap, types.TUnion{U: b}); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func numberSubset(a, b types.NumberShape) bool {
	if _, ok := b.(types.NumAll); ok {
		return true
	}
	if _, ok := a.(types.NumAll); ok {
		_, bAll := b.(types.NumAll)
		return bAll
	}
	if _, ok := b.(types.NumInt); ok {
		return true
	}
	if _, ok := a.(types.NumInt); ok {
		_, bInt := b.(types.NumInt)
		return bInt
	}
	sa, _ := numberAsSet(a)
	sb, _ := numberAsSet(b)
	for _, v := range sa.Values() {
		if !sb.Contains(v) {
			return false
		}
	}
	return true
}

func stringSubset(a, b types.StringShape) bool {
	if _, ok := b.(types.StrAll); ok {
		return true
	}
	if _, ok := a.(types.StrAll); ok {
		return false
	}
	sa, _ := stringAsSet(a)
	sb, _ := stringAsSet(b)
	for _, v := range sa.Values() {
		if !sb.Contains(v) {
			return false
		}
	}
	return true
}

// assertTableSub implements table subtyping including the Array/Map/
// Record inter-convertibility rules of spec §4.B.
func (c *Context) assertTableSub(a, b types.TableShape) error {
	if _, ok := a.(types.TableEmpty); ok {
		return nil
	}
	if _, ok := b.(types.TableAll); ok {
		return nil
	}
	if _, ok := a.(types.TableAll); ok {
		return &NotSubtypeError{L: types.TTables{TB: a}, R: types.TTables{TB: b}}
	}

	switch av := a.(type) {
	case types.TableTuple:
		if bv, ok := b.(types.TableTuple); ok {
			var errs []error
			for i := range bv.Elems {
				ea := elemOrNil(av.Elems, i)
				errs = append(errs, c.AssertSub(ea, bv.Elems[i]))
			}
			return multierr.Combine(errs...)
		}
	case types.TableArray:
		switch bv := b.(type) {
		case types.TableArray:
			return c.AssertSub(av.Elem, bv.Elem)
		case types.TableMap:
			return c.assertTableSub(av.AsMap(), bv)
		}
	case types.TableMap:
		if bv, ok := b.(types.TableMap); ok {
			return multierr.Combine(
				c.AssertSub(bv.Key, av.Key),
				c.AssertSub(av.Value, bv.Value),
			)
		}
	case types.TableRecord:
		switch bv := b.(type) {
		case types.TableRecord:
			// Only fields present on both sides are checked: a's fields
			// absent from b impose no requirement, and b's fields absent
			// from a are not required either (record subtyping here is
			// width-permissive in both directions; see DESIGN.md). The
			// missing-key-is-Nil rule governs record *union*, not this.
			var errs []error
			for k, vb := range bv.Fields {
				if va, ok := av.Fields[k]; ok {
					errs = append(errs, c.AssertSub(va, vb))
				}
			}
			return multierr.Combine(errs...)
		case types.TableMap:
			joined := av.JoinFieldTypes(types.Join)
			return multierr.Combine(
				c.AssertSub(types.TStrings{S: types.StrAll{}}, bv.Key),
				c.AssertSub(joined, bv.Value),
			)
		}
	}
	return &NotSubtypeError{L: types.TTables{TB: a}, R: types.TTables{TB: b}}
}

func elemOrNil(elems []types.T, i int) types.T {
	if i < len(elems) {
		return elems[i]
	}
	return types.TNil{}
}

// assertFunctionSub implements contravariant-argument, covariant-return
// function subtyping (spec §4.B "Functions").
func (c *Context) assertFunctionSub(a, b types.FunctionShape) error {
	if _, ok := b.(types.FuncAll); ok {
		return nil
	}
	fa, aOk := types.AsMulti(a)
	fb, bOk := types.AsMulti(b)
	if !aOk || !bOk {
		return &NotSubtypeError{L: types.TFunctions{F: a}, R: types.TFunctions{F: b}}
	}
	// Every overload required by b must be satisfiable by some overload of a.
	var outer []error
	for _, need := range fb {
		ok := false
		for _, have := range fa {
			if c.assertSingleFunctionSub(have, need) == nil {
				ok = true
				break
			}
		}
		if !ok {
			outer = append(outer, &NotSubtypeError{L: types.TFunctions{F: a}, R: types.TFunctions{F: b}})
		}
	}
	return multierr.Combine(outer...)
}

func (c *Context) assertSingleFunctionSub(have, need types.Function) error {
	mismatch := &NotSubtypeError{
		L: types.TFunctions{F: types.FuncSimple{Fn: have}},
		R: types.TFunctions{F: types.FuncSimple{Fn: need}},
	}
	var errs []error
	for i := 0; i < need.Args.Len(); i++ {
		haveArg, haveOk := have.Args.At(i)
		needArg, _ := need.Args.At(i)
		if !haveOk {
			// need calls with more positional args than have can accept
			// (no fixed slot, no open rest): have cannot stand in for need.
			errs = append(errs, mismatch)
			continue
		}
		// contravariant: have's parameter must accept need's argument.
		errs = append(errs, c.AssertSub(needArg, haveArg))
	}
	for i := 0; i < have.Returns.Len(); i++ {
		haveRet, _ := have.Returns.At(i)
		needRet, needOk := need.Returns.At(i)
		if !needOk {
			// have promises more return values than need requires room for.
			errs = append(errs, mismatch)
			continue
		}
		// covariant: have's return must satisfy need's return.
		errs = append(errs, c.AssertSub(haveRet, needRet))
	}
	return multierr.Combine(errs...)
}

// AssertEq implements `a = b` (spec §4.B).
func (c *Context) AssertEq(a, b types.T) error {
	a, b = types.Normalize(a), types.Normalize(b)

	if ba, ok := a.(types.TBuiltin); ok {
		if bb, ok := b.(types.TBuiltin); ok && bb.Tag == ba.Tag {
			return c.AssertEq(ba.Base, bb.Base)
		}
		return c.AssertEq(ba.Base, b)
	}
	if bb, ok := b.(types.TBuiltin); ok {
		return c.AssertEq(a, bb.Base)
	}

	if _, ok := a.(types.TDynamic); ok {
		return nil
	}
	if _, ok := b.(types.TDynamic); ok {
		return nil
	}

	if va, ok := a.(types.TVar); ok {
		if vb, ok := b.(types.TVar); ok {
			return c.AssertTVarEqTVar(va, vb)
		}
		return c.AssertTVarEq(va, b)
	}
	if vb, ok := b.(types.TVar); ok {
		return c.AssertTVarEq(vb, a)
	}

	au, aIsUnion := a.(types.TUnion)
	bu, bIsUnion := b.(types.TUnion)
	switch {
	case aIsUnion && bIsUnion:
		return c.assertUnionEq(au.U, bu.U)
	case aIsUnion && !bIsUnion:
		return c.assertUnionEqPlain(au.U, b)
	case !aIsUnion && bIsUnion:
		return c.assertUnionEqPlain(bu.U, a)
	}

	// Records need a dedicated equality check: assertTableSub's width
	// permissiveness (fields present on only one side impose no subtype
	// requirement) would let mutual subtyping wrongly accept two records
	// with different key sets. Other table shapes, and every other value
	// shape, have no such asymmetry and reduce to mutual subtyping below.
	if at, ok := a.(types.TTables); ok {
		if bt, ok := b.(types.TTables); ok {
			if ar, ok := at.TB.(types.TableRecord); ok {
				if br, ok := bt.TB.(types.TableRecord); ok {
					return c.assertRecordEq(ar, br)
				}
			}
		}
	}

	// Neither side is a union: equality reduces to mutual subtyping over
	// the concrete shapes.
	return multierr.Combine(c.AssertSub(a, b), c.AssertSub(b, a))
}

func (c *Context) assertRecordEq(a, b types.TableRecord) error {
	if len(a.Fields) != len(b.Fields) {
		return &NotEqualError{L: types.TTables{TB: a}, R: types.TTables{TB: b}}
	}
	var errs []error
	for k, va := range a.Fields {
		vb, ok := b.Fields[k]
		if !ok {
			return &NotEqualError{L: types.TTables{TB: a}, R: types.TTables{TB: b}}
		}
		errs = append(errs, c.AssertEq(va, vb))
	}
	return multierr.Combine(errs...)
}

// assertUnionEqPlain implements spec §9 open question 2: a union equals a
// plain shape iff the plain shape structurally matches the union's single
// populated shape-slot and no other flag (nil/true/false/other
// shape/free TVar) is also set.
func (c *Context) assertUnionEqPlain(u types.UnionShape, plain types.T) error {
	single, ok := u.Simplify()
	if !ok {
		return &NotEqualError{L: types.TUnion{U: u}, R: plain}
	}
	if _, isNone := single.(types.TNone); isNone {
		return &NotEqualError{L: types.TUnion{U: u}, R: plain}
	}
	return c.AssertEq(single, plain)
}

func (c *Context) assertUnionEq(a, b types.UnionShape) error {
	if a.HasNil != b.HasNil || a.HasTrue != b.HasTrue || a.HasFalse != b.HasFalse {
		return &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}}
	}
	var errs []error
	if (a.Numbers == nil) != (b.Numbers == nil) {
		errs = append(errs, &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}})
	} else if a.Numbers != nil {
		errs = append(errs, c.AssertEq(types.TNumbers{N: *a.Numbers}, types.TNumbers{N: *b.Numbers}))
	}
	if (a.Tables == nil) != (b.Tables == nil) {
		errs = append(errs, &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}})
	} else if a.Tables != nil {
		errs = append(errs, c.AssertEq(types.TTables{TB: *a.Tables}, types.TTables{TB: *b.Tables}))
	}
	if (a.Strings == nil) != (b.Strings == nil) {
		errs = append(errs, &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}})
	} else if a.Strings != nil {
		errs = append(errs, c.AssertEq(types.TStrings{S: *a.Strings}, types.TStrings{S: *b.Strings}))
	}
	if (a.Funcs == nil) != (b.Funcs == nil) {
		errs = append(errs, &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}})
	} else if a.Funcs != nil {
		errs = append(errs, c.AssertEq(types.TFunctions{F: *a.Funcs}, types.TFunctions{F: *b.Funcs}))
	}
	if (a.TVar == nil) != (b.TVar == nil) {
		errs = append(errs, &NotEqualError{L: types.TUnion{U: a}, R: types.TUnion{U: b}})
	} else if a.TVar != nil {
		errs = append(errs, c.AssertTVarEqTVar(*a.TVar, *b.TVar))
	}
	return multierr.Combine(errs...)
}
