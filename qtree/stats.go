// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qtree

import "math"

// Stats summarizes the shape of a tree.
type Stats struct {
	// Dims is the dimensionality of the tree.
	Dims int
	// Entries is the number of entries.
	Entries int
	// Nodes is the number of nodes, including the root.
	Nodes int
	// LeafNodes is the number of leaf nodes.
	LeafNodes int
	// InternalNodes is the number of subdivided nodes.
	InternalNodes int
	// Depth is the number of nodes on the longest root-to-leaf path.
	Depth int
}

// Stats walks the whole tree collecting Stats. The walk cross-checks
// the tree's structural invariants as it goes: every entry must lie in
// the quadrant its coordinates route it to, every node's entry count
// must match what is actually under it, leaves must respect capacity,
// subdivided branches must hold more than a leaf's worth, and the
// walk's entry count must agree with the tree's own bookkeeping. Any
// breach means tree corruption, so it panics rather than returning an
// error.
func (t *Tree[V]) Stats() Stats {
	s := Stats{Dims: t.dims}
	if t.root == nil {
		return s
	}
	lo := make([]float64, t.dims)
	hi := make([]float64, t.dims)
	for d := range lo {
		lo[d] = math.Inf(-1)
		hi[d] = math.Inf(1)
	}
	t.verify(t.root, 0, lo, hi, &s)
	if s.Entries != t.size {
		fmtPanic("stats walk found %d entries but the tree tracks %d", s.Entries, t.size)
	}
	return s
}

// verify checks the subtree rooted at n at the given depth (0 at the
// root). Every entry must satisfy lo[d] <= p[d] < hi[d] in every
// dimension; these bounds mirror the comparisons inserts route by, so
// they stay exact where recomputing quadrant geometry would not.
func (t *Tree[V]) verify(n *node[V], depth int, lo, hi []float64, s *Stats) {
	s.Nodes++
	if depth+1 > s.Depth {
		s.Depth = depth + 1
	}
	if n.children == nil {
		s.LeafNodes++
		s.Entries += len(n.entries)
		if n.count != len(n.entries) {
			fmtPanic("leaf count %d does not match its %d entries", n.count, len(n.entries))
		}
		if len(n.entries) > LeafCapacity && depth < maxSplitDepth {
			fmtPanic("leaf above capacity (%d > %d)", len(n.entries), LeafCapacity)
		}
		if len(n.entries) == 0 && n != t.root {
			textPanic("empty leaf off the root")
		}
		for i := range n.entries {
			p := n.entries[i].point
			if len(p) != t.dims {
				fmtPanic("entry with %d dimensions in a %d dimensional tree", len(p), t.dims)
			}
			for d := range p {
				if p[d] < lo[d] || p[d] >= hi[d] {
					fmtPanic("entry out of its quadrant in dimension %d (%g not in [%g,%g))", d, p[d], lo[d], hi[d])
				}
			}
		}
		return
	}
	s.InternalNodes++
	if len(n.children) != 1<<t.dims {
		fmtPanic("internal node with %d child slots (want %d)", len(n.children), 1<<t.dims)
	}
	if len(n.entries) != 0 {
		textPanic("internal node holding entries")
	}
	if n.count <= LeafCapacity {
		fmtPanic("internal node at or below leaf capacity (%d <= %d)", n.count, LeafCapacity)
	}
	sum := 0
	for q, c := range n.children {
		if c == nil {
			continue
		}
		sum += c.count
		if c.radius != n.radius/2 {
			fmtPanic("child radius %g out of step with parent radius %g", c.radius, n.radius)
		}
		if got := n.quadrant(c.center); got != q {
			fmtPanic("child center %s filed under quadrant %d, routes to %d", formatPoint(c.center), q, got)
		}
		// Narrow the routing bounds to quadrant q: a set bit pins
		// coordinates at or above the parent center, a clear bit
		// strictly below.
		clo := make([]float64, t.dims)
		chi := make([]float64, t.dims)
		for d := 0; d < t.dims; d++ {
			clo[d], chi[d] = lo[d], hi[d]
			if q&(1<<d) != 0 {
				if n.center[d] > clo[d] {
					clo[d] = n.center[d]
				}
			} else if n.center[d] < chi[d] {
				chi[d] = n.center[d]
			}
		}
		t.verify(c, depth+1, clo, chi, s)
	}
	if n.count != sum {
		fmtPanic("node count %d does not match the %d entries under its children", n.count, sum)
	}
}
