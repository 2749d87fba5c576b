// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kdtree

import "math"

// Stats summarizes the shape of a tree.
type Stats struct {
	// Dims is the dimensionality of the tree.
	Dims int
	// Entries is the number of entries, which equals the number of
	// nodes.
	Entries int
	// Depth is the number of nodes on the longest root-to-leaf path.
	// A k-d tree is not balanced, so Depth may far exceed
	// log2(Entries) for unlucky insertion orders.
	Depth int
}

// Stats walks the whole tree collecting Stats. The walk cross-checks
// the tree's structural invariants as it goes: every point must lie
// inside the coordinate range its ancestors' splits pin it to, and the
// walk's entry count must agree with the tree's own bookkeeping. Any
// breach means tree corruption, so it panics rather than returning an
// error.
func (t *Tree[V]) Stats() Stats {
	s := Stats{Dims: t.dims}
	lo := make([]float64, t.dims)
	hi := make([]float64, t.dims)
	for d := range lo {
		lo[d] = math.Inf(-1)
		hi[d] = math.Inf(1)
	}
	t.verify(t.root, 0, 1, lo, hi, &s)
	if s.Entries != t.size {
		fmtPanic("stats walk found %d entries but the tree tracks %d", s.Entries, t.size)
	}
	return s
}

// verify checks the subtree rooted at n, which splits on axis. Every
// point must satisfy lo[d] <= p[d] < hi[d] in every dimension; the
// bounds narrow as the walk descends. lo and hi are mutated in place
// and restored before returning.
func (t *Tree[V]) verify(n *node[V], axis, depth int, lo, hi []float64, s *Stats) {
	if n == nil {
		return
	}
	s.Entries++
	if depth > s.Depth {
		s.Depth = depth
	}
	if len(n.point) != t.dims {
		fmtPanic("point with %d dimensions in a %d dimensional tree", len(n.point), t.dims)
	}
	for d := range n.point {
		if n.point[d] < lo[d] || n.point[d] >= hi[d] {
			fmtPanic("point out of order in dimension %d (%g not in [%g,%g))", d, n.point[d], lo[d], hi[d])
		}
	}
	next := (axis + 1) % t.dims
	old := hi[axis]
	hi[axis] = n.point[axis]
	t.verify(n.left, next, depth+1, lo, hi, s)
	hi[axis] = old
	old = lo[axis]
	lo[axis] = n.point[axis]
	t.verify(n.right, next, depth+1, lo, hi, s)
	lo[axis] = old
}
