package types

import "github.com/funvibe/tyforge/internal/kind"

// FromKind lifts a syntactic kind tree K to the narrowest T (spec §4.A).
// It is the single point of contact between this core and the externally
// produced kind tree.
func FromKind(k kind.Kind) T {
	switch v := k.(type) {
	case kind.Dynamic:
		return TDynamic{}
	case kind.Nil:
		return TNil{}
	case kind.Boolean:
		return TBoolean{}
	case kind.BooleanLit:
		if v.Value {
			return TTrue{}
		}
		return TFalse{}
	case kind.Number:
		return TNumbers{NumAll{}}
	case kind.Integer:
		return TNumbers{NumInt{}}
	case kind.IntegerLit:
		return TNumbers{NumOne{v.Value}}
	case kind.String:
		return TStrings{StrAll{}}
	case kind.StringLit:
		return TStrings{StrOne{v.Value}}
	case kind.Table:
		return TTables{tableShapeFromKind(v.Shape)}
	case kind.Function:
		return TFunctions{FuncSimple{functionFromKind(v)}}
	case kind.Union:
		// Kind trees never mention type variables (spec §6's K grammar has
		// no TVar case), so folding sibling members with the context-free
		// Join is exact here — unlike the general lattice Union operator in
		// package constraints, which must additionally merge TVar
		// placeholders through the union-find store.
		var acc T = TNone{}
		for _, item := range v.Items {
			acc = Join(acc, FromKind(item))
		}
		return acc
	default:
		return TDynamic{}
	}
}

func tableShapeFromKind(s kind.TableShape) TableShape {
	switch v := s.(type) {
	case kind.AllTables:
		return TableAll{}
	case kind.EmptyTable:
		return TableEmpty{}
	case kind.TupleTable:
		elems := make([]T, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = FromKind(e)
		}
		return TableTuple{Elems: elems}
	case kind.ArrayTable:
		return TableArray{Elem: FromKind(v.Elem)}
	case kind.RecordTable:
		fields := make(map[string]T, len(v.Fields))
		for name, f := range v.Fields {
			fields[name] = FromKind(f)
		}
		return TableRecord{Fields: fields}
	case kind.MapTable:
		return TableMap{Key: FromKind(v.Key), Value: FromKind(v.Value)}
	default:
		return TableAll{}
	}
}

func functionFromKind(f kind.Function) Function {
	params := make([]T, len(f.Params))
	for i, p := range f.Params {
		params[i] = FromKind(p)
	}
	rets := make([]T, len(f.Returns))
	for i, r := range f.Returns {
		rets[i] = FromKind(r)
	}
	var rest *T
	if f.RestReturn != nil {
		r := FromKind(f.RestReturn)
		rest = &r
	}
	return Function{
		Args:    TySeq{Fixed: params},
		Returns: TySeq{Fixed: rets, Rest: rest},
	}
}

// toUnionShape views any T as a UnionShape, so Join can merge two shapes
// uniformly regardless of whether either side already is a Union. A
// non-union T fills a single slot (Boolean sets both the true and false
// flags); a Union is returned with all of its slots.
func toUnionShape(t T) UnionShape {
	switch v := t.(type) {
	case TUnion:
		return v.U
	case TNil:
		return UnionShape{HasNil: true}
	case TTrue:
		return UnionShape{HasTrue: true}
	case TFalse:
		return UnionShape{HasFalse: true}
	case TBoolean:
		return UnionShape{HasTrue: true, HasFalse: true}
	case TNumbers:
		n := v.N
		return UnionShape{Numbers: &n}
	case TStrings:
		s := v.S
		return UnionShape{Strings: &s}
	case TTables:
		tb := v.TB
		return UnionShape{Tables: &tb}
	case TFunctions:
		f := v.F
		return UnionShape{Funcs: &f}
	case TVar:
		vv := v
		return UnionShape{TVar: &vv}
	default:
		return UnionShape{}
	}
}

func mergeUnionShape(a, b UnionShape) UnionShape {
	out := UnionShape{
		HasNil:   a.HasNil || b.HasNil,
		HasTrue:  a.HasTrue || b.HasTrue,
		HasFalse: a.HasFalse || b.HasFalse,
	}
	out.Numbers = mergeNumberSlot(a.Numbers, b.Numbers)
	out.Strings = mergeStringSlot(a.Strings, b.Strings)
	out.Tables = mergeTableSlot(a.Tables, b.Tables)
	out.Funcs = mergeFuncSlot(a.Funcs, b.Funcs)
	if a.TVar != nil {
		out.TVar = a.TVar
	} else {
		out.TVar = b.TVar
	}
	return out
}

func mergeNumberSlot(a, b *NumberShape) *NumberShape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := numberUnion(*a, *b)
	return &merged
}

// numberUnion is the pure per-shape join used both by plain union
// construction and by the lattice's Numbers union rule.
func numberUnion(a, b NumberShape) NumberShape {
	if _, ok := a.(NumAll); ok {
		return NumAll{}
	}
	if _, ok := b.(NumAll); ok {
		return NumAll{}
	}
	if _, ok := a.(NumInt); ok {
		return NumInt{}
	}
	if _, ok := b.(NumInt); ok {
		return NumInt{}
	}
	sa, _ := asSomeSet(a)
	sb, _ := asSomeSet(b)
	return NumSome{sa.Union(sb)}
}

func mergeStringSlot(a, b *StringShape) *StringShape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := stringUnion(*a, *b)
	return &merged
}

func stringUnion(a, b StringShape) StringShape {
	if _, ok := a.(StrAll); ok {
		return StrAll{}
	}
	if _, ok := b.(StrAll); ok {
		return StrAll{}
	}
	sa, _ := asSomeStringSet(a)
	sb, _ := asSomeStringSet(b)
	return StrSome{sa.Union(sb)}
}

func mergeTableSlot(a, b *TableShape) *TableShape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := TableJoin(*a, *b)
	return &merged
}

func mergeFuncSlot(a, b *FunctionShape) *FunctionShape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	fa, _ := AsMulti(*a)
	fb, _ := AsMulti(*b)
	merged := FuncMulti{append(append([]Function{}, fa...), fb...)}
	var out FunctionShape = merged
	return &out
}
