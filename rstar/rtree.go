// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rstar provides an in-memory R*-tree: a balanced spatial
// index over axis-aligned boxes in any number of dimensions, with
// rectangle queries, k nearest neighbor search, and bulk loading.
//
// The insertion heuristics follow Beckmann, Kriegel, Schneider and
// Seeger, "The R*-tree: An Efficient and Robust Access Method for
// Points and Rectangles" (SIGMOD 1990): subtrees are chosen by overlap
// cost directly above the leaves, overfull nodes shed their outermost
// entries for reinsertion before they are allowed to split, and splits
// pick the axis and boundary that minimize margin and overlap. Bulk
// loading uses Sort-Tile-Recursive packing.
//
// The tree is not safe for concurrent use. Readers and writers must be
// coordinated externally.
package rstar

// An Entry pairs a bounding box with the value stored under it. Point
// data is stored as degenerate boxes, see Point.
type Entry[V any] struct {
	Box

	// Value is the data value stored under Box.
	Value V
}

// An RTree is an in-memory R*-tree holding values of type V indexed by
// bounding box. The zero value is not usable; create trees with New or
// NewWithConfig.
//
// Entries are identified by their exact box. Several entries may share
// one box, in which case lookups and removals pick among them
// arbitrarily.
type RTree[V any] struct {
	cfg  Config
	root *node[V]
	// size is the number of data entries in the tree.
	size int
	// nodes is the number of nodes in the tree, including the root.
	nodes int
	// height is the number of levels. The root sits at level height-1
	// and the leaves at level 0, so levels keep their numbers when the
	// root grows or shrinks.
	height int
}

// New creates an empty R*-tree for boxes of the given dimensionality
// using the default configuration. Panics if dims is less than 1.
func New[V any](dims int) *RTree[V] {
	return NewWithConfig[V](DefaultConfig(dims))
}

// NewWithConfig creates an empty R*-tree with explicit structural
// parameters. Panics if the configuration is invalid.
func NewWithConfig[V any](cfg Config) *RTree[V] {
	cfg.validate()
	t := &RTree[V]{cfg: cfg}
	t.clear()
	return t
}

// Config returns the tree's configuration.
func (t *RTree[V]) Config() Config {
	return t.cfg
}

// Size returns the number of entries in the tree.
func (t *RTree[V]) Size() int {
	return t.size
}

// Depth returns the number of levels in the tree. An empty tree
// consists of a bare leaf root and has depth 1.
func (t *RTree[V]) Depth() int {
	return t.height
}

// NodeCount returns the number of nodes in the tree, including the
// root.
func (t *RTree[V]) NodeCount() int {
	return t.nodes
}

// Bounds returns the minimum bounding box of all entries. For an empty
// tree it returns the inverted box EmptyBox produces.
func (t *RTree[V]) Bounds() Box {
	return t.root.bounds.clone()
}

// Clear removes all entries, resetting the tree to a bare leaf root.
func (t *RTree[V]) Clear() {
	t.clear()
}

func (t *RTree[V]) clear() {
	t.root = newNode[V](t.cfg.Dims, true, t.cfg.MaxDataEntries+1)
	t.size = 0
	t.nodes = 1
	t.height = 1
}

// Insert adds value to the tree under bounding box b. The tree keeps
// its own copy of the box. Entries with duplicate boxes are permitted.
// Panics if the box dimensions do not match the tree.
func (t *RTree[V]) Insert(b Box, value V) {
	t.checkBox(&b)
	ctx := newInsertContext(t.height)
	t.insertItem(item[V]{bounds: b.clone(), value: value}, 0, ctx)
	t.size++
	t.debugVerify()
}

// Remove deletes one entry whose box exactly equals b and returns its
// value. The second return value reports whether such an entry was
// found. Panics if the box dimensions do not match the tree.
func (t *RTree[V]) Remove(b Box) (V, bool) {
	t.checkBox(&b)
	leaf, i := t.locate(&b)
	if leaf == nil {
		var zero V
		return zero, false
	}
	v := leaf.items[i].value
	leaf.removeItemAt(i)
	t.size--
	t.condense(leaf)
	t.debugVerify()
	return v, true
}

// Update moves one entry from box from to box to and returns its
// value. If no entry has box from, the tree is unchanged and the
// second return value is false. Panics if either box's dimensions do
// not match the tree.
func (t *RTree[V]) Update(from, to Box) (V, bool) {
	t.checkBox(&to)
	v, ok := t.Remove(from)
	if !ok {
		var zero V
		return zero, false
	}
	t.Insert(to, v)
	return v, true
}

// Get returns the value of one entry whose box exactly equals b. The
// second return value reports whether such an entry was found. Panics
// if the box dimensions do not match the tree.
func (t *RTree[V]) Get(b Box) (V, bool) {
	t.checkBox(&b)
	leaf, i := t.locate(&b)
	if leaf == nil {
		var zero V
		return zero, false
	}
	return leaf.items[i].value, true
}

// Contains reports whether the tree holds an entry whose box exactly
// equals b. Panics if the box dimensions do not match the tree.
func (t *RTree[V]) Contains(b Box) bool {
	_, ok := t.Get(b)
	return ok
}

// checkBox panics if b is not a well-formed box of the tree's
// dimensionality. Boxes built with NewBox always pass.
func (t *RTree[V]) checkBox(b *Box) {
	if len(b.Lower) != t.cfg.Dims || len(b.Upper) != t.cfg.Dims {
		fmtPanic("box dimensions (%d/%d) do not match tree dimensions (%d)", len(b.Lower), len(b.Upper), t.cfg.Dims)
	}
}

// checkPoint panics if p does not have the tree's dimensionality.
func (t *RTree[V]) checkPoint(p []float64) {
	if len(p) != t.cfg.Dims {
		fmtPanic("point dimensions (%d) do not match tree dimensions (%d)", len(p), t.cfg.Dims)
	}
}

// An insertContext tracks which levels have already exercised forced
// reinsertion while one top level insertion is being digested. Each
// level gets at most one round of reinsertion per insertion; after
// that an overfull node on the level must split.
type insertContext struct {
	blocked []bool
}

func newInsertContext(height int) *insertContext {
	return &insertContext{blocked: make([]bool, height)}
}

func (c *insertContext) blockedAt(level int) bool {
	return level < len(c.blocked) && c.blocked[level]
}

func (c *insertContext) block(level int) {
	for len(c.blocked) <= level {
		c.blocked = append(c.blocked, false)
	}
	c.blocked[level] = true
}

// insertItem routes an item to a node at the given level, grows the
// bounds along the ancestor path, and digests any overflow. Data items
// carry level 0; a child node carries the level of the container that
// must receive it, which is one above the child's own level.
func (t *RTree[V]) insertItem(it item[V], level int, ctx *insertContext) {
	n := t.chooseSubtree(it.box(), level)
	n.attach(it)
	extendUpward(n, it.box())
	if len(n.items) > n.maxItems(&t.cfg) {
		t.overflow(n, level, ctx)
	}
}

// overflow digests an overfull node: forced reinsertion on the first
// overflow of the level, a split on any further overflow of the same
// level. The root never reinserts, it only splits.
func (t *RTree[V]) overflow(n *node[V], level int, ctx *insertContext) {
	if n != t.root && !ctx.blockedAt(level) {
		ctx.block(level)
		t.reinsert(n, level, ctx)
	} else {
		t.split(n, level, ctx)
	}
}

// reinsert removes the node's outermost items and routes each of them
// back into the tree at the node's own level, closest first.
func (t *RTree[V]) reinsert(n *node[V], level int, ctx *insertContext) {
	victims := takeReinsertVictims(n, &t.cfg)
	recalcUpward(n.parent)
	for i := range victims {
		t.insertItem(victims[i], level, ctx)
	}
}

// split divides an overfull node and routes the new sibling into the
// tree one level up, growing a new root when the node was the root.
func (t *RTree[V]) split(n *node[V], level int, ctx *insertContext) {
	sib := splitNode(n, &t.cfg)
	t.nodes++
	recalcUpward(n.parent)
	if n == t.root {
		t.growRoot(n, sib)
	} else {
		t.insertItem(item[V]{child: sib}, level+1, ctx)
	}
}

// growRoot replaces the root with a new directory node holding the old
// root and its split sibling, increasing the tree's height by one.
func (t *RTree[V]) growRoot(a, b *node[V]) {
	root := newNode[V](t.cfg.Dims, false, t.cfg.MaxDirEntries+1)
	root.attach(item[V]{child: a})
	root.attach(item[V]{child: b})
	root.recalcMBB()
	t.root = root
	t.nodes++
	t.height++
}

// locate finds a leaf holding an entry whose box equals b, returning
// the leaf and the entry's index within it, or (nil, -1). The walk is
// an iterative depth first search over an explicit stack, descending
// only into subtrees whose bounds contain b.
func (t *RTree[V]) locate(b *Box) (*node[V], int) {
	type frame struct {
		n   *node[V]
		pos int
	}
	stack := make([]frame, 1, t.height)
	stack[0] = frame{n: t.root}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		n := f.n
		if n.leaf {
			for i := range n.items {
				if n.items[i].bounds.Equal(b) {
					return n, i
				}
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if f.pos == len(n.items) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := n.items[f.pos].child
		f.pos++
		if c.bounds.Contains(b) {
			stack = append(stack, frame{n: c})
		}
	}
	return nil, -1
}

// condense walks from a shrunken leaf to the root, dissolving every
// node that fell below its minimum fill and recomputing the bounds of
// the survivors. The dissolved nodes' items are then reinserted one by
// one at the level each dissolved node occupied, and a directory root
// left with a single child is replaced by that child. Neighboring
// nodes are never merged; individual reinsertion is what refreshes the
// tree's shape.
func (t *RTree[V]) condense(leaf *node[V]) {
	type orphan struct {
		items []item[V]
		level int
	}
	var orphans []orphan
	level := 0
	n := leaf
	for n != t.root {
		parent := n.parent
		if len(n.items) < n.minItems(&t.cfg) {
			i := parent.childIndex(n)
			if i < 0 {
				textPanic("node missing from its parent")
			}
			parent.removeItemAt(i)
			n.parent = nil
			t.nodes--
			if len(n.items) > 0 {
				orphans = append(orphans, orphan{items: n.items, level: level})
			}
		} else {
			n.recalcMBB()
		}
		n = parent
		level++
	}
	t.root.recalcMBB()

	for !t.root.leaf && len(t.root.items) == 1 {
		child := t.root.items[0].child
		child.parent = nil
		t.root = child
		t.nodes--
		t.height--
	}

	for _, o := range orphans {
		for i := range o.items {
			ctx := newInsertContext(t.height)
			t.insertItem(o.items[i], o.level, ctx)
		}
	}
}
