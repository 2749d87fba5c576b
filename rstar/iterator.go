// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

// An Iterator walks every entry whose box intersects a query box, in
// no particular order. Iterators are created by Query and may be
// repositioned with Reset to run further queries without allocating.
//
// An Iterator reads the tree's structure as it goes. Modifying the
// tree while an iterator is live invalidates the iterator.
type Iterator[V any] struct {
	tree  *RTree[V]
	query Box
	stack []iterFrame[V]
	cur   *item[V]
}

type iterFrame[V any] struct {
	n   *node[V]
	pos int
}

// Query begins an intersection query: the returned iterator yields
// every entry whose box intersects b, including entries that merely
// touch it. Panics if the box dimensions do not match the tree.
func (t *RTree[V]) Query(b Box) *Iterator[V] {
	it := &Iterator[V]{tree: t}
	it.Reset(b)
	return it
}

// Reset repositions the iterator at the start of a fresh query over
// box b, reusing the iterator's internal storage. Panics if the box
// dimensions do not match the tree.
func (it *Iterator[V]) Reset(b Box) {
	it.tree.checkBox(&b)
	it.query = b.clone()
	it.stack = it.stack[:0]
	it.cur = nil
	if it.tree.size > 0 {
		it.stack = append(it.stack, iterFrame[V]{n: it.tree.root})
	}
}

// Next advances to the next matching entry, reporting whether one
// exists. The walk is a depth first search over an explicit stack that
// descends only into subtrees whose bounds intersect the query box.
func (it *Iterator[V]) Next() bool {
	for len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]
		n := f.n
		if f.pos == len(n.items) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		target := &n.items[f.pos]
		f.pos++
		if !it.query.Intersects(target.box()) {
			continue
		}
		if n.leaf {
			it.cur = target
			return true
		}
		it.stack = append(it.stack, iterFrame[V]{n: target.child})
	}
	it.cur = nil
	return false
}

// Entry returns the entry the iterator is positioned on. It must only
// be called after Next has returned true; calling it in any other
// state panics.
func (it *Iterator[V]) Entry() Entry[V] {
	if it.cur == nil {
		textPanic("iterator is not positioned on an entry")
	}
	return it.cur.entry()
}

// Collect drains the iterator, returning all remaining entries.
func (it *Iterator[V]) Collect() []Entry[V] {
	var entries []Entry[V]
	for it.Next() {
		entries = append(entries, it.Entry())
	}
	return entries
}
