package types

import (
	"fmt"
	"sort"
	"strings"
)

// TableShape is the payload of a Tables(TB) value (spec §3).
type TableShape interface {
	isTableShape()
	String() string
}

// TableAll is the unrefined "any table" shape.
type TableAll struct{}

// TableEmpty is the empty-table shape `{}`, a subtype of every other table
// shape (spec §4.B Tables).
type TableEmpty struct{}

// TableTuple is a fixed-length, positionally-typed table.
type TableTuple struct{ Elems []T }

// TableArray is a homogeneous, integer-indexed table; equivalent to
// TableMap{Key: Numbers(Int), Value: Elem} for lattice purposes.
type TableArray struct{ Elem T }

// TableRecord is a fixed set of named fields. A key absent from Fields is
// treated as having type TNil when two records are joined (TableJoin).
// Intersection keeps a field present on only one side as it is, and
// subtyping and equality do not substitute Nil for a missing key.
type TableRecord struct{ Fields map[string]T }

// TableMap is a homogeneous key/value table.
type TableMap struct{ Key, Value T }

func (TableAll) isTableShape()   {}
func (TableEmpty) isTableShape() {}
func (TableTuple) isTableShape() {}
func (TableArray) isTableShape() {}
func (TableRecord) isTableShape() {}
func (TableMap) isTableShape()    {}

func (TableAll) String() string   { return "table" }
func (TableEmpty) String() string { return "{}" }

func (t TableTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TableArray) String() string { return "[" + t.Elem.String() + "]" }

func (t TableRecord) String() string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, t.Fields[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t TableMap) String() string {
	return fmt.Sprintf("{[%s]: %s}", t.Key.String(), t.Value.String())
}

// TTables is the Tables(TB) variant.
type TTables struct{ TB TableShape }

func (TTables) isT()         {}
func (TTables) Flags() Flags { return FlagTable }
func (t TTables) String() string { return t.TB.String() }

func (t TTables) FreeTVars() []TVar {
	switch tb := t.TB.(type) {
	case TableTuple:
		var vs []TVar
		for _, e := range tb.Elems {
			vs = append(vs, e.FreeTVars()...)
		}
		return uniqueTVars(vs)
	case TableArray:
		return tb.Elem.FreeTVars()
	case TableRecord:
		keys := make([]string, 0, len(tb.Fields))
		for k := range tb.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var vs []TVar
		for _, k := range keys {
			vs = append(vs, tb.Fields[k].FreeTVars()...)
		}
		return uniqueTVars(vs)
	case TableMap:
		return uniqueTVars(append(tb.Key.FreeTVars(), tb.Value.FreeTVars()...))
	default:
		return nil
	}
}

// AsMap returns the TableMap view of an array: Array(v) is treated as
// Map(Int, v). The record-to-map view is built separately, from
// JoinFieldTypes.
func (tb TableArray) AsMap() TableMap {
	return TableMap{Key: TNumbers{NumInt{}}, Value: tb.Elem}
}

// JoinFieldTypes returns the union of every field type in a record, used to
// build the record's Map(String, join(vs)) supertype view.
func (tb TableRecord) JoinFieldTypes(join func(a, b T) T) T {
	var acc T = TNone{}
	keys := make([]string, 0, len(tb.Fields))
	for k := range tb.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		acc = join(acc, tb.Fields[k])
	}
	return acc
}
