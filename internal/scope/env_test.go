package scope

import (
	"testing"

	"github.com/funvibe/tyforge/internal/constraints"
	"github.com/funvibe/tyforge/internal/types"
)

func testInt() types.T    { return types.TNumbers{N: types.NumInt{}} }
func testString() types.T { return types.TStrings{S: types.StrAll{}} }

func TestEnter_Leave_FloorAtBottomLocal(t *testing.T) {
	e := New(constraints.NewContext())
	e.Leave()
	e.AddLocalVar("x", NewSlot(testInt()), false)
	if _, ok := e.GetLocalVar("x"); !ok {
		t.Fatal("Leave() below the floor must not pop the bottom local scope")
	}
}

func TestGetLocalVar_DoesNotFallBackToGlobal(t *testing.T) {
	e := New(constraints.NewContext())
	e.AssumeVar("g", NewSlot(testInt()))
	if _, ok := e.GetLocalVar("g"); ok {
		t.Error("GetLocalVar must not see a global-only binding")
	}
	if _, ok := e.GetVar("g"); !ok {
		t.Error("GetVar must fall back to the global scope")
	}
}

func TestGetVar_LocalShadowsGlobal(t *testing.T) {
	e := New(constraints.NewContext())
	e.AssumeVar("x", NewSlot(testInt()))
	e.AddLocalVar("x", NewSlot(testString()), false)

	got, ok := e.GetVar("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if got.Ty.String() != testString().String() {
		t.Errorf("local binding should shadow global, got %v", got.Ty)
	}
}

func TestAddLocalVar_AdaptWrapsAssignableWithMark(t *testing.T) {
	e := New(constraints.NewContext())
	e.AddLocalVar("x", NewSlot(testInt()), true)

	got, ok := e.GetLocalVar("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if !got.Assignable || got.Assigned == nil {
		t.Error("adapt=true should produce an assignable slot with a mark")
	}
}

func TestAddLocalVar_NoAdapt_PlainSlot(t *testing.T) {
	e := New(constraints.NewContext())
	e.AddLocalVar("x", NewSlot(testInt()), false)

	got, ok := e.GetLocalVar("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if got.Assignable {
		t.Error("adapt=false should leave the slot non-assignable")
	}
}

func TestAssignToVar_EnforcesSubtypeAgainstExisting(t *testing.T) {
	e := New(constraints.NewContext())
	e.AddLocalVar("x", NewSlot(testInt()), true)

	if err := e.AssignToVar("x", NewSlot(testInt())); err != nil {
		t.Errorf("assigning a compatible type should succeed: %v", err)
	}
	if err := e.AssignToVar("x", NewSlot(testString())); err == nil {
		t.Error("assigning an incompatible type should fail")
	}
}

func TestAssignToVar_CreatesGlobalOnMiss(t *testing.T) {
	e := New(constraints.NewContext())
	if err := e.AssignToVar("y", NewSlot(testInt())); err != nil {
		t.Fatalf("assigning an unbound name should create a global binding: %v", err)
	}
	got, ok := e.GetVar("y")
	if !ok {
		t.Fatal("expected y to now exist")
	}
	if !got.Assignable {
		t.Error("the newly created global binding should be assignable")
	}
}

func TestAssumeVar_OverwritesInnermostBinding(t *testing.T) {
	e := New(constraints.NewContext())
	e.AddLocalVar("x", NewSlot(testInt()), false)
	e.AssumeVar("x", NewSlot(testString()))

	got, ok := e.GetLocalVar("x")
	if !ok {
		t.Fatal("expected x to still exist")
	}
	if got.Ty.String() != testString().String() {
		t.Error("AssumeVar should unconditionally overwrite, ignoring subtyping")
	}
}

func TestGetFrame_WalksToEnclosingFrame(t *testing.T) {
	e := New(constraints.NewContext())
	f := e.GetFrame()
	if f == nil {
		t.Fatal("the global scope always carries a frame")
	}

	e.Enter(New())
	if e.GetFrame() != f {
		t.Error("a frame-less local scope should walk up to the enclosing frame")
	}

	e.Enter(NewWithFrame())
	inner := e.GetFrame()
	if inner == f {
		t.Error("a frame-bearing scope should shadow the enclosing frame")
	}
}

func TestDefineType_RejectsShadowingAcrossEnclosingScopes(t *testing.T) {
	e := New(constraints.NewContext())
	if err := e.DefineType("Foo", testInt()); err != nil {
		t.Fatalf("first definition should succeed: %v", err)
	}

	e.Enter(New())
	if err := e.DefineType("Foo", testString()); err == nil {
		t.Error("redefining a type name already bound in an enclosing scope should fail")
	}
}

func TestGetNamedType_And_TyFromName(t *testing.T) {
	e := New(constraints.NewContext())
	if _, err := e.TyFromName("Missing"); err == nil {
		t.Error("resolving an undefined type name should fail")
	}

	if err := e.DefineType("Foo", testInt()); err != nil {
		t.Fatalf("define should succeed: %v", err)
	}
	got, err := e.TyFromName("Foo")
	if err != nil {
		t.Fatalf("resolving a defined type name should succeed: %v", err)
	}
	if got.String() != testInt().String() {
		t.Errorf("got %v, want Int", got)
	}
}

func TestGetVararg_AbsentAndPresent(t *testing.T) {
	e := New(constraints.NewContext())
	if _, ok := e.GetVararg(); ok {
		t.Error("no vararg should be set on a fresh frame")
	}

	seq := types.TySeq{Fixed: []types.T{testInt()}}
	e.GetFrameMut().Vararg = &seq
	got, ok := e.GetVararg()
	if !ok {
		t.Fatal("expected a vararg to be present")
	}
	if len(got.Fixed) != 1 {
		t.Errorf("got %v", got)
	}
}
