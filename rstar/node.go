// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

// An item is one slot of a node. In a leaf node an item carries a data
// value together with its bounding box, and the child pointer is nil.
// In a directory node an item carries a child node and nothing else;
// the child's own bounds serve as the item's bounds. Treating both
// kinds uniformly lets the split and reinsertion machinery work on
// either node kind.
type item[V any] struct {
	bounds Box
	value  V
	child  *node[V]
}

// box returns the bounding box of the item: the child's bounds for a
// directory item, the item's own bounds for a data item.
func (it *item[V]) box() *Box {
	if it.child != nil {
		return &it.child.bounds
	}
	return &it.bounds
}

// entry converts a data item back into the public Entry form.
func (it *item[V]) entry() Entry[V] {
	return Entry[V]{Box: it.bounds, Value: it.value}
}

// A node is a leaf or directory node of the tree. Its bounds are the
// minimum bounding box of all of its items. The parent pointer is nil
// only for the root.
type node[V any] struct {
	bounds Box
	parent *node[V]
	leaf   bool
	items  []item[V]
}

func newNode[V any](dims int, leaf bool, capacity int) *node[V] {
	return &node[V]{
		bounds: EmptyBox(dims),
		leaf:   leaf,
		items:  make([]item[V], 0, capacity),
	}
}

// maxItems returns the node's capacity under the given configuration.
func (n *node[V]) maxItems(cfg *Config) int {
	if n.leaf {
		return cfg.MaxDataEntries
	}
	return cfg.MaxDirEntries
}

// minItems returns the node's minimum fill under the given
// configuration. The root is exempt from this minimum.
func (n *node[V]) minItems(cfg *Config) int {
	if n.leaf {
		return cfg.MinDataEntries
	}
	return cfg.MinDirEntries
}

// attach appends an item to the node and, for a directory item, wires
// the child's parent pointer. It does not touch the node's bounds.
func (n *node[V]) attach(it item[V]) {
	if it.child != nil {
		it.child.parent = n
	}
	n.items = append(n.items, it)
}

// removeItemAt deletes the item at index i, preserving the order of
// the remaining items. It does not touch the node's bounds.
func (n *node[V]) removeItemAt(i int) {
	var zero item[V]
	copy(n.items[i:], n.items[i+1:])
	n.items[len(n.items)-1] = zero
	n.items = n.items[:len(n.items)-1]
}

// childIndex returns the index of the item holding child c, or -1 if c
// is not a child of the node. Children are matched by identity, never
// by bounds, since distinct children may have identical bounds.
func (n *node[V]) childIndex(c *node[V]) int {
	for i := range n.items {
		if n.items[i].child == c {
			return i
		}
	}
	return -1
}

// recalcMBB recomputes the node's bounds from scratch from its items.
// Required after any operation that may shrink the bounds; growth is
// handled incrementally by extendUpward.
func (n *node[V]) recalcMBB() {
	b := EmptyBox(len(n.bounds.Lower))
	for i := range n.items {
		b.Expand(n.items[i].box())
	}
	n.bounds = b
}

// extendUpward grows the bounds of n and of every ancestor of n by the
// minimum amount required to contain b. The walk stops at the first
// ancestor that already contains b.
func extendUpward[V any](n *node[V], b *Box) {
	for n != nil && n.bounds.extend(b) {
		n = n.parent
	}
}

// recalcUpward recomputes the bounds of n and of every ancestor of n
// from scratch. Used after removals, where bounds may shrink and the
// incremental extendUpward walk cannot help.
func recalcUpward[V any](n *node[V]) {
	for n != nil {
		n.recalcMBB()
		n = n.parent
	}
}
