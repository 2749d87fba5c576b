// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kdtree

// An Iterator walks every entry whose point lies inside a query
// window, in no particular order. Iterators are created by Query and
// may be repositioned with Reset to run further queries without
// allocating.
//
// An Iterator reads the tree's structure as it goes. Modifying the
// tree while an iterator is live invalidates the iterator.
type Iterator[V any] struct {
	tree     *Tree[V]
	min, max []float64
	stack    []iterFrame[V]
	cur      *node[V]
}

type iterFrame[V any] struct {
	n    *node[V]
	axis int
}

// Query begins a window query: the returned iterator yields every
// entry whose point lies inside the axis-aligned window [min, max],
// inclusive on all faces. Panics if the corner dimensions do not match
// the tree's, or if the window is inverted.
func (t *Tree[V]) Query(min, max []float64) *Iterator[V] {
	it := &Iterator[V]{tree: t}
	it.Reset(min, max)
	return it
}

// Reset repositions the iterator at the start of a fresh query over
// the window [min, max], reusing the iterator's internal storage.
// Panics if the corner dimensions do not match the tree's, or if the
// window is inverted.
func (it *Iterator[V]) Reset(min, max []float64) {
	it.tree.checkPoint(min)
	it.tree.checkPoint(max)
	for d := range min {
		if min[d] > max[d] {
			fmtPanic("inverted window (min %g > max %g in dimension %d)", min[d], max[d], d)
		}
	}
	it.min = append(it.min[:0], min...)
	it.max = append(it.max[:0], max...)
	it.stack = it.stack[:0]
	it.cur = nil
	if it.tree.root != nil {
		it.stack = append(it.stack, iterFrame[V]{n: it.tree.root})
	}
}

// Next advances to the next matching entry, reporting whether one
// exists. The walk is a depth first search over an explicit stack that
// skips subtrees the window cannot reach on the split dimension.
func (it *Iterator[V]) Next() bool {
	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		n, axis := f.n, f.axis
		next := (axis + 1) % it.tree.dims
		// Left holds coordinates below the pivot, right holds the
		// pivot and above.
		if n.right != nil && it.max[axis] >= n.point[axis] {
			it.stack = append(it.stack, iterFrame[V]{n: n.right, axis: next})
		}
		if n.left != nil && it.min[axis] < n.point[axis] {
			it.stack = append(it.stack, iterFrame[V]{n: n.left, axis: next})
		}
		if it.inWindow(n.point) {
			it.cur = n
			return true
		}
	}
	it.cur = nil
	return false
}

func (it *Iterator[V]) inWindow(p []float64) bool {
	for d := range p {
		if p[d] < it.min[d] || p[d] > it.max[d] {
			return false
		}
	}
	return true
}

// Entry returns the entry the iterator is positioned on. It must only
// be called after Next has returned true; calling it in any other
// state panics.
func (it *Iterator[V]) Entry() Entry[V] {
	if it.cur == nil {
		textPanic("iterator is not positioned on an entry")
	}
	return Entry[V]{Point: it.cur.point, Value: it.cur.value}
}

// Collect drains the iterator, returning all remaining entries.
func (it *Iterator[V]) Collect() []Entry[V] {
	var entries []Entry[V]
	for it.Next() {
		entries = append(entries, it.Entry())
	}
	return entries
}
