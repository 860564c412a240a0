package types

import (
	"testing"

	"github.com/funvibe/tyforge/internal/kind"
)

func TestFlags_IsSubsetOf(t *testing.T) {
	if !Flags(FlagNumber).IsSubsetOf(FlagNumber | FlagString) {
		t.Error("FlagNumber should be subset of FlagNumber|FlagString")
	}
	if Flags(FlagString).IsSubsetOf(FlagNumber) {
		t.Error("FlagString should not be subset of FlagNumber")
	}
}

func TestPredicates_Integral(t *testing.T) {
	if !IsIntegral(TNumbers{NumInt{}}) {
		t.Error("NumInt should be integral")
	}
	if !IsIntegral(TNumbers{NumOne{5}}) {
		t.Error("NumOne should be integral")
	}
	if IsIntegral(TNumbers{NumAll{}}) {
		t.Error("NumAll should not be (guaranteed) integral")
	}
}

func TestPredicates_HasTrueFalse(t *testing.T) {
	u := normalizeUnion(UnionShape{HasTrue: true, HasNil: true})
	if !HasTrue(u) {
		t.Error("expected HasTrue on union with HasTrue slot")
	}
	if HasFalse(u) {
		t.Error("expected !HasFalse")
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	cases := []T{
		TNumbers{NumSome{NewIntSet(1, 2, 3)}},
		TStrings{StrSome{NewStringSet("a")}},
		TTables{TableRecord{Fields: map[string]T{"x": TNumbers{NumInt{}}}}},
		TUnion{UnionShape{HasNil: true, HasTrue: true}},
		Join(TNumbers{NumOne{1}}, TStrings{StrOne{"x"}}),
	}
	for i, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		if once.String() != twice.String() {
			t.Errorf("case %d: Normalize not a fixed point: once=%s twice=%s", i, once, twice)
		}
	}
}

func TestNormalize_SingletonSetCollapses(t *testing.T) {
	got := Normalize(TNumbers{NumSome{NewIntSet(7)}})
	one, ok := got.(TNumbers)
	if !ok {
		t.Fatalf("expected TNumbers, got %v", got)
	}
	if _, ok := one.N.(NumOne); !ok {
		t.Errorf("singleton NumSome should normalize to NumOne, got %v", one.N)
	}
}

func TestNormalize_EmptySetCollapsesToNone(t *testing.T) {
	got := Normalize(TNumbers{NumSome{NewIntSet()}})
	if _, ok := got.(TNone); !ok {
		t.Errorf("empty NumSome should normalize to TNone, got %v", got)
	}
}

func TestFromKind_Literals(t *testing.T) {
	tests := []struct {
		name string
		k    kind.Kind
		want string
	}{
		{"dynamic", kind.Dynamic{}, "?"},
		{"nil", kind.Nil{}, "nil"},
		{"true", kind.BooleanLit{Value: true}, "true"},
		{"false", kind.BooleanLit{Value: false}, "false"},
		{"int-lit", kind.IntegerLit{Value: 42}, "42"},
		{"string-lit", kind.StringLit{Value: "hi"}, `"hi"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromKind(tt.k).String()
			if got != tt.want {
				t.Errorf("FromKind(%v) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromKind_Union(t *testing.T) {
	k := kind.Union{Items: []kind.Kind{
		kind.IntegerLit{Value: 1},
		kind.IntegerLit{Value: 2},
		kind.Nil{},
	}}
	got := FromKind(k)
	if !HasNil(got) {
		t.Errorf("union should admit nil: %v", got)
	}
	if !IsNumeric(got) {
		t.Errorf("union should admit numbers: %v", got)
	}
}

func TestFreeTVars_Dedup(t *testing.T) {
	v := TVar{ID: 3}
	tup := TTables{TableTuple{Elems: []T{v, v}}}
	vs := tup.FreeTVars()
	if len(vs) != 1 {
		t.Errorf("expected 1 unique free tvar, got %d", len(vs))
	}
}

func TestTableArray_AsMap(t *testing.T) {
	arr := TableArray{Elem: TStrings{StrAll{}}}
	m := arr.AsMap()
	if _, ok := m.Key.(TNumbers); !ok {
		t.Errorf("array-as-map key should be Numbers, got %v", m.Key)
	}
	if m.Value.String() != arr.Elem.String() {
		t.Errorf("array-as-map value should equal elem, got %v", m.Value)
	}
}
