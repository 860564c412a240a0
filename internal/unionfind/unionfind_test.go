package unionfind

import "testing"

func TestCreate_SingletonIsOwnRoot(t *testing.T) {
	uf := New[string]()
	x := uf.Create("a")
	if uf.Find(x) != x {
		t.Errorf("fresh node should be its own root")
	}
}

func TestUnion_Connects(t *testing.T) {
	uf := New[int]()
	a := uf.Create(1)
	b := uf.Create(2)
	if uf.Connected(a, b) {
		t.Fatal("distinct singletons should not be connected")
	}
	uf.Union(a, b)
	if !uf.Connected(a, b) {
		t.Error("after Union, a and b should be connected")
	}
}

func TestUnion_Idempotent(t *testing.T) {
	uf := New[int]()
	a := uf.Create(1)
	b := uf.Create(2)
	r1 := uf.Union(a, b)
	r2 := uf.Union(a, b)
	if r1 != r2 {
		t.Errorf("repeated Union of already-merged sets should return the same root")
	}
}

func TestUnion_ByRank_TieIncrementsWinner(t *testing.T) {
	uf := New[int]()
	a := uf.Create(0)
	b := uf.Create(0)
	root := uf.Union(a, b)
	_, rank := uf.Read(root)
	if rank != 1 {
		t.Errorf("tied union should bump winner rank to 1, got %d", rank)
	}
}

func TestFind_PathCompression(t *testing.T) {
	uf := New[int]()
	a := uf.Create(0)
	b := uf.Create(0)
	c := uf.Create(0)
	uf.Union(a, b)
	uf.Union(b, c)

	root := uf.Find(a)
	parent, _ := uf.Read(a)
	if parent != root {
		t.Errorf("Find(a) should compress a's parent directly to the root, got %d want %d", parent, root)
	}
}

func TestGetSet_OperateOnRepresentative(t *testing.T) {
	uf := New[string]()
	a := uf.Create("a-payload")
	b := uf.Create("b-payload")
	uf.Union(a, b)
	uf.Set(a, "merged")
	if got := uf.Get(b); got != "merged" {
		t.Errorf("Set through a should be visible via b after union, got %q", got)
	}
}

func TestLen_TracksCreatedHandles(t *testing.T) {
	uf := New[int]()
	if uf.Len() != 0 {
		t.Fatalf("new forest should have length 0")
	}
	uf.Create(1)
	uf.Create(2)
	if uf.Len() != 2 {
		t.Errorf("expected length 2, got %d", uf.Len())
	}
}
