// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

// Stats summarizes the shape of a tree.
type Stats struct {
	// Dims is the dimensionality of the tree.
	Dims int
	// Entries is the number of data entries.
	Entries int
	// Nodes is the number of nodes, including the root.
	Nodes int
	// LeafNodes is the number of leaf nodes.
	LeafNodes int
	// DirNodes is the number of directory nodes.
	DirNodes int
	// Depth is the number of levels.
	Depth int
}

// Stats walks the whole tree collecting Stats. The walk cross-checks
// the tree's structural invariants as it goes: every node's bounds
// must equal the combined bounds of its items, every non-root node
// must respect its minimum and maximum fill, every child must point
// back at its parent, all leaves must share one level, and the walk's
// entry and node counts must agree with the tree's own bookkeeping.
// Any breach means tree corruption, so it panics rather than returning
// an error.
func (t *RTree[V]) Stats() Stats {
	s := Stats{Dims: t.cfg.Dims, Depth: t.height}
	t.verify(t.root, t.height-1, &s)
	if s.Entries != t.size {
		fmtPanic("stats walk found %d entries but the tree tracks %d", s.Entries, t.size)
	}
	if s.Nodes != t.nodes {
		fmtPanic("stats walk found %d nodes but the tree tracks %d", s.Nodes, t.nodes)
	}
	return s
}

func (t *RTree[V]) verify(n *node[V], level int, s *Stats) {
	s.Nodes++
	if n.leaf {
		s.LeafNodes++
		if level != 0 {
			fmtPanic("leaf node at level %d", level)
		}
	} else {
		s.DirNodes++
		if level < 1 {
			textPanic("directory node at leaf level")
		}
		if len(n.items) == 0 {
			textPanic("directory node with no children")
		}
	}
	if n != t.root && len(n.items) < n.minItems(&t.cfg) {
		fmtPanic("node below minimum fill (%d < %d)", len(n.items), n.minItems(&t.cfg))
	}
	if len(n.items) > n.maxItems(&t.cfg) {
		fmtPanic("node above maximum fill (%d > %d)", len(n.items), n.maxItems(&t.cfg))
	}
	want := EmptyBox(t.cfg.Dims)
	for i := range n.items {
		want.Expand(n.items[i].box())
	}
	if !n.bounds.Equal(&want) {
		fmtPanic("node bounds %s out of sync with its items (want %s)", &n.bounds, &want)
	}
	if n.leaf {
		for i := range n.items {
			if n.items[i].child != nil {
				textPanic("leaf node holds a child node")
			}
		}
		s.Entries += len(n.items)
		return
	}
	for i := range n.items {
		c := n.items[i].child
		if c == nil {
			textPanic("directory node holds a data item")
		}
		if c.parent != n {
			textPanic("child node with a stale parent link")
		}
		t.verify(c, level-1, s)
	}
}
