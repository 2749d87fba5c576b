// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package kdtree provides an in-memory k-d tree: a binary spatial
// index over points in any number of dimensions, with window queries
// and k nearest neighbor search.
//
// Nodes split on one dimension at a time, cycling through the
// dimensions by depth. Points whose coordinate is below a node's on
// the split dimension go left, all others go right, so duplicate
// points are permitted and live in right subtrees. Removal replaces
// the removed node with the minimum of an affected subtree, keeping
// the ordering intact without rebuilding.
//
// The tree is not balanced. Inserting sorted points degrades it to a
// list; shuffle such input or batch it through a fresh tree. The tree
// is not safe for concurrent use.
package kdtree

import "math"

// An Entry pairs a point with the value stored under it. The point
// slice is owned by the tree and must not be modified.
type Entry[V any] struct {
	// Point is the position the value is stored under.
	Point []float64

	// Value is the data value stored at Point.
	Value V
}

// A Tree is an in-memory k-d tree holding values of type V indexed by
// point. The zero value is not usable; create trees with New.
//
// Entries are identified by their exact point. Several entries may
// share one point, in which case lookups and removals pick among them
// arbitrarily.
type Tree[V any] struct {
	dims int
	root *node[V]
	// size is the number of entries in the tree.
	size int
}

// node is a single tree node. Every node carries one entry; the split
// dimension is implied by the node's depth and is not stored.
type node[V any] struct {
	point []float64
	value V
	left  *node[V]
	right *node[V]
}

// New creates an empty k-d tree indexing points with dims dimensions.
// New panics if dims is less than 1.
func New[V any](dims int) *Tree[V] {
	if dims < 1 {
		fmtPanic("dims must be at least 1 (got %d)", dims)
	}
	return &Tree[V]{dims: dims}
}

// Dims returns the number of dimensions of the points the tree
// indexes.
func (t *Tree[V]) Dims() int {
	return t.dims
}

// Size returns the number of entries in the tree.
func (t *Tree[V]) Size() int {
	return t.size
}

// Clear removes all entries from the tree.
func (t *Tree[V]) Clear() {
	t.root = nil
	t.size = 0
}

// Insert adds value to the tree at the given point. The point is
// copied, so the caller may reuse the slice. Insert panics if the
// point's dimensions do not match the tree's.
func (t *Tree[V]) Insert(point []float64, value V) {
	t.checkPoint(point)
	nn := &node[V]{point: clonePoint(point), value: value}
	t.size++
	if t.root == nil {
		t.root = nn
		t.debugVerify()
		return
	}
	n := t.root
	axis := 0
	for {
		if point[axis] < n.point[axis] {
			if n.left == nil {
				n.left = nn
				break
			}
			n = n.left
		} else {
			if n.right == nil {
				n.right = nn
				break
			}
			n = n.right
		}
		axis = (axis + 1) % t.dims
	}
	t.debugVerify()
}

// Get returns a value stored at the given point. The boolean result
// reports whether the point was present. Get panics if the point's
// dimensions do not match the tree's.
func (t *Tree[V]) Get(point []float64) (V, bool) {
	t.checkPoint(point)
	n := t.root
	axis := 0
	for n != nil {
		if pointsEqual(point, n.point) {
			return n.value, true
		}
		if point[axis] < n.point[axis] {
			n = n.left
		} else {
			n = n.right
		}
		axis = (axis + 1) % t.dims
	}
	var zero V
	return zero, false
}

// Contains reports whether the tree holds an entry at the given point.
func (t *Tree[V]) Contains(point []float64) bool {
	_, ok := t.Get(point)
	return ok
}

// Remove removes one entry stored at the given point and returns its
// value. The boolean result reports whether an entry was found. The
// removed node is replaced by the minimum of its right subtree on the
// node's split dimension (or, lacking a right subtree, the minimum of
// the left subtree, which then moves right to preserve the tie rule),
// recursing until a leaf drops off. Remove panics if the point's
// dimensions do not match the tree's.
func (t *Tree[V]) Remove(point []float64) (V, bool) {
	t.checkPoint(point)
	root, removed, ok := t.remove(t.root, point, 0)
	if ok {
		t.root = root
		t.size--
		t.debugVerify()
	}
	return removed, ok
}

// remove removes one node holding point from the subtree rooted at n,
// which splits on axis, and returns the subtree's new root.
func (t *Tree[V]) remove(n *node[V], point []float64, axis int) (*node[V], V, bool) {
	var zero V
	if n == nil {
		return nil, zero, false
	}
	next := (axis + 1) % t.dims
	if pointsEqual(point, n.point) {
		value := n.value
		switch {
		case n.right != nil:
			min := findMin(n.right, axis, next, t.dims)
			n.point, n.value = min.point, min.value
			n.right, _, _ = t.remove(n.right, min.point, next)
		case n.left != nil:
			// With no right subtree the replacement comes from the
			// left, whose points are all at or above the new pivot on
			// this axis. The whole subtree moves right so the tie rule
			// still holds.
			min := findMin(n.left, axis, next, t.dims)
			n.point, n.value = min.point, min.value
			n.right, _, _ = t.remove(n.left, min.point, next)
			n.left = nil
		default:
			return nil, value, true
		}
		return n, value, true
	}
	var (
		removed V
		ok      bool
	)
	if point[axis] < n.point[axis] {
		n.left, removed, ok = t.remove(n.left, point, next)
	} else {
		n.right, removed, ok = t.remove(n.right, point, next)
	}
	return n, removed, ok
}

// findMin returns the node with the smallest coordinate on the target
// dimension in the subtree rooted at n, which splits on axis. Ties go
// to the shallowest node found.
func findMin[V any](n *node[V], target, axis, dims int) *node[V] {
	if n == nil {
		return nil
	}
	next := (axis + 1) % dims
	if axis == target {
		// Everything right of n is at or above n on this axis.
		if n.left == nil {
			return n
		}
		return findMin(n.left, target, next, dims)
	}
	best := n
	if l := findMin(n.left, target, next, dims); l != nil && l.point[target] < best.point[target] {
		best = l
	}
	if r := findMin(n.right, target, next, dims); r != nil && r.point[target] < best.point[target] {
		best = r
	}
	return best
}

// checkPoint panics unless the point's dimensions match the tree's.
func (t *Tree[V]) checkPoint(point []float64) {
	if len(point) != t.dims {
		fmtPanic("point dimensions (%d) do not match tree dimensions (%d)", len(point), t.dims)
	}
}

func clonePoint(point []float64) []float64 {
	p := make([]float64, len(point))
	copy(p, point)
	return p
}

func pointsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if a[d] != b[d] {
			return false
		}
	}
	return true
}

// pointDist returns the Euclidean distance between two points.
func pointDist(a, b []float64) float64 {
	var sum float64
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
