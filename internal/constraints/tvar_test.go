package constraints

import "testing"

func TestAssertTVarSub_RepeatedTighteningThenDisjointFails(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()
	intT := testInt()
	stringT := testString()

	if err := c.AssertTVarSub(v, intT); err != nil {
		t.Fatalf("first v<:Int should succeed: %v", err)
	}
	if err := c.AssertTVarSub(v, intT); err != nil {
		t.Fatalf("repeating v<:Int should succeed (idempotent): %v", err)
	}
	if err := c.AssertTVarSub(v, stringT); err == nil {
		t.Fatalf("v<:String after v<:Int should fail (disjoint bounds)")
	}
}

func TestAssertTVarSub_DisjointThroughTransitive(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()
	w := c.GenTVar()

	if err := c.AssertTVarSubTVar(v, w); err != nil {
		t.Fatalf("v<:w should succeed: %v", err)
	}
	if err := c.AssertTVarSub(w, testString()); err != nil {
		t.Fatalf("w<:String should succeed: %v", err)
	}
	if err := c.AssertTVarSub(v, testInt()); err == nil {
		t.Fatalf("v<:Int should fail: w is already bound to String transitively")
	}
}

func TestAssertTVarEq_OverridesThenConflicts(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()

	if err := c.AssertTVarEq(v, testInt()); err != nil {
		t.Fatalf("v=Int should succeed: %v", err)
	}
	if err := c.AssertSub(v, testNumber()); err != nil {
		t.Fatalf("v<:Number should succeed once v=Int: %v", err)
	}
	if err := c.AssertTVarSup(v, testString()); err == nil {
		t.Fatalf("v:>String should fail once v=Int")
	}
}

func TestGetTVarExactType_AfterAssertEq(t *testing.T) {
	c := NewContext()
	v := c.GenTVar()
	if err := c.AssertTVarEq(v, testInt()); err != nil {
		t.Fatalf("assert eq failed: %v", err)
	}
	got, ok := c.GetTVarExactType(v)
	if !ok {
		t.Fatal("expected an exact type to be recorded")
	}
	if got.String() != testInt().String() {
		t.Errorf("got %v, want Int", got)
	}
}

func TestAssertMarkTrue_ThenAssertFalseFails(t *testing.T) {
	c := NewContext()
	m := c.GenMark()
	if err := c.AssertMarkTrue(m); err != nil {
		t.Fatalf("assert true should succeed: %v", err)
	}
	if err := c.AssertMarkFalse(m); err == nil {
		t.Fatal("assert false after true should fail")
	}
	if err := c.AssertMarkTrue(m); err != nil {
		t.Fatalf("re-asserting true should still succeed: %v", err)
	}
}

func TestAssertMarkImply_DischargesOnTrue(t *testing.T) {
	c := NewContext()
	m1 := c.GenMark()
	m2 := c.GenMark()
	if err := c.AssertMarkImply(m1, m2); err != nil {
		t.Fatalf("imply should succeed: %v", err)
	}
	if err := c.AssertMarkTrue(m1); err != nil {
		t.Fatalf("assert m1 true should succeed: %v", err)
	}
	if err := c.AssertMarkFalse(m2); err == nil {
		t.Fatal("m2 should already be true via implication, so asserting false should fail")
	}
}

func TestAssertMarkRequireEq_DeferredThenActivated(t *testing.T) {
	c := NewContext()
	m := c.GenMark()
	v := c.GenTVar()

	if err := c.AssertMarkRequireEq(m, testInt(), v); err != nil {
		t.Fatalf("deferred require should succeed: %v", err)
	}
	if err := c.AssertMarkTrue(m); err != nil {
		t.Fatalf("assert m true should succeed and discharge the deferred eq: %v", err)
	}
	if err := c.AssertTVarSub(v, testString()); err == nil {
		t.Fatal("v should now be exactly Int, so v<:String must fail")
	}
}
