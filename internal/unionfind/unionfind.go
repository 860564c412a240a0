// Package unionfind implements a generic rank-balanced union-find with path
// compression (spec §4.E). It backs every equivalence-class partition in
// package constraints: the TVar sub/sup/eq bound stores and the mark-info
// store are each a separate instance of this one index-addressed forest
// type rather than each hand-rolling their own.
package unionfind

// Node is the payload a caller attaches to a union-find slot. The forest
// itself only tracks parent and rank; Payload travels along for the ride so
// callers can look up what a representative "means" without a second map.
type Node[T any] struct {
	parent  int
	rank    int
	Payload T
}

// UnionFind is a forest of Node[T], addressed by small integer handles
// returned from Create. The zero value is not usable; use New.
type UnionFind[T any] struct {
	nodes []Node[T]
}

// New returns an empty union-find forest.
func New[T any]() *UnionFind[T] {
	return &UnionFind[T]{}
}

// Create allocates a new singleton set holding payload and returns its
// handle. A freshly created node is its own parent with rank 0.
func (uf *UnionFind[T]) Create(payload T) int {
	id := len(uf.nodes)
	uf.nodes = append(uf.nodes, Node[T]{parent: id, rank: 0, Payload: payload})
	return id
}

// Read returns the (parent, rank) pair stored at handle x, without
// following the chain to its root.
func (uf *UnionFind[T]) Read(x int) (parent, rank int) {
	n := &uf.nodes[x]
	return n.parent, n.rank
}

func (uf *UnionFind[T]) writeParent(x, parent int) {
	uf.nodes[x].parent = parent
}

func (uf *UnionFind[T]) incrementRank(x int) {
	uf.nodes[x].rank++
}

// Find returns the representative handle of x's set. After walking to the
// root it points x directly at that root; the intermediate nodes on the
// path keep their parents (spec §4.E: "walk, then set the found root as
// parent on the original node").
func (uf *UnionFind[T]) Find(x int) int {
	root := x
	for {
		parent, _ := uf.Read(root)
		if parent == root {
			break
		}
		root = parent
	}
	uf.writeParent(x, root)
	return root
}

// Union merges the sets containing x and y by rank, incrementing the
// winner's rank only on a tie, and returns the resulting representative.
// If x and y are already in the same set, it is a no-op that returns that
// set's representative.
func (uf *UnionFind[T]) Union(x, y int) int {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return rx
	}
	_, rankX := uf.Read(rx)
	_, rankY := uf.Read(ry)
	switch {
	case rankX < rankY:
		uf.writeParent(rx, ry)
		return ry
	case rankX > rankY:
		uf.writeParent(ry, rx)
		return rx
	default:
		uf.writeParent(ry, rx)
		uf.incrementRank(rx)
		return rx
	}
}

// Get returns the payload stored at x's representative.
func (uf *UnionFind[T]) Get(x int) T {
	return uf.nodes[uf.Find(x)].Payload
}

// Set overwrites the payload stored at x's representative.
func (uf *UnionFind[T]) Set(x int, payload T) {
	uf.nodes[uf.Find(x)].Payload = payload
}

// Connected reports whether x and y are currently in the same set.
func (uf *UnionFind[T]) Connected(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

// Len returns the number of handles ever created.
func (uf *UnionFind[T]) Len() int {
	return len(uf.nodes)
}
