package constraints

import (
	"testing"

	"github.com/funvibe/tyforge/internal/types"
)

func TestAssertSub_DynamicAndNoneBoundary(t *testing.T) {
	c := NewContext()
	if err := c.AssertSub(types.TDynamic{}, testInt()); err != nil {
		t.Errorf("Dynamic <: X should always succeed: %v", err)
	}
	if err := c.AssertSub(testInt(), types.TDynamic{}); err != nil {
		t.Errorf("X <: Dynamic should always succeed: %v", err)
	}
	if err := c.AssertSub(types.TNone{}, testInt()); err != nil {
		t.Errorf("None <: X should always succeed: %v", err)
	}
	if err := c.AssertSub(testInt(), types.TNone{}); err == nil {
		t.Errorf("X <: None should fail when X != None")
	}
	if err := c.AssertSub(types.TDynamic{}, types.TNone{}); err != nil {
		t.Errorf("Dynamic <: None should succeed (Dynamic is top and bottom)")
	}
}

func TestUnion_CommutativeAndIdempotent(t *testing.T) {
	c := NewContext()
	a := testInt()
	b := testString()
	ab := c.Union(a, b).String()
	ba := c.Union(b, a).String()
	if ab != ba {
		t.Errorf("union not commutative: %s vs %s", ab, ba)
	}
	if c.Union(a, a).String() != types.Normalize(a).String() {
		t.Errorf("union not idempotent")
	}
	if c.Union(a, types.TNone{}).String() != types.Normalize(a).String() {
		t.Errorf("union with None should be identity")
	}
}

func TestIntersect_CommutativeAndIdempotent(t *testing.T) {
	c := NewContext()
	a := testInt()
	b := testString()
	if c.Intersect(a, b).String() != "none" {
		t.Errorf("Int & String should be None")
	}
	ab := c.Intersect(a, b).String()
	ba := c.Intersect(b, a).String()
	if ab != ba {
		t.Errorf("intersect not commutative: %s vs %s", ab, ba)
	}
	if c.Intersect(a, a).String() != types.Normalize(a).String() {
		t.Errorf("intersect not idempotent")
	}
	if c.Intersect(a, types.TNone{}).String() != "none" {
		t.Errorf("intersect with None should be None")
	}
}

func TestAssertEq_PlainTypes(t *testing.T) {
	c := NewContext()
	if err := c.AssertEq(testInt(), testInt()); err != nil {
		t.Errorf("Int = Int should succeed: %v", err)
	}
	if err := c.AssertEq(testInt(), testString()); err == nil {
		t.Error("Int = String should fail")
	}
}

func TestRecordSubtyping_WithFreeVars(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()
	w := c.GenTVar()

	left := record(map[string]types.T{"a": testInt(), "b": v})
	right := record(map[string]types.T{"a": w, "b": testString(), "c": testBool()})

	if err := c.AssertSub(left, right); err != nil {
		t.Fatalf("record subtyping with free vars should succeed: %v", err)
	}
	if err := c.AssertSub(v, testString()); err != nil {
		t.Errorf("v should now be bounded by String: %v", err)
	}
	if err := c.AssertSub(testInt(), w); err != nil {
		t.Errorf("Int <: w should succeed: %v", err)
	}

	if err := c.AssertEq(left, right); err == nil {
		t.Error("equality should fail: right has extra key c")
	}
}

func TestAssertSub_UnionWithTVar_Conservative(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()
	u := types.TUnion{U: types.UnionShape{HasNil: true, TVar: &v}}

	if err := c.AssertSub(testInt(), u); err == nil {
		t.Error("subtype of a union containing a free TVar should conservatively fail (spec open question 1)")
	}
}

func TestAssertEq_UnionVsPlain(t *testing.T) {
	c := NewContext()

	onlyNil := types.TUnion{U: types.UnionShape{HasNil: true}}
	if err := c.AssertEq(onlyNil, types.TNil{}); err != nil {
		t.Errorf("union with single populated nil slot should equal plain Nil: %v", err)
	}

	nilAndInt := types.TUnion{U: types.UnionShape{HasNil: true, Numbers: numPtr(types.NumInt{})}}
	if err := c.AssertEq(nilAndInt, types.TNil{}); err == nil {
		t.Error("union with extra populated slots should not equal the bare Nil shape")
	}
}

func numPtr(n types.NumberShape) *types.NumberShape { return &n }
