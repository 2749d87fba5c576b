// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package qtree provides an in-memory point-region quadtree
// generalized to any number of dimensions: the indexed region is a
// hypercube that subdivides into 2^dims equal quadrants whenever a
// leaf outgrows its capacity, with window queries and k nearest
// neighbor search.
//
// Points exactly on a quadrant boundary belong to the higher quadrant.
// Removing entries collapses any branch whose total falls back to leaf
// capacity, so the shape tracks the live data. Trees created with New
// index a fixed region; NewAutoExtent trees grow their region outward
// to cover whatever is inserted.
//
// The tree is not safe for concurrent use.
package qtree

import "math"

// LeafCapacity is the number of entries a leaf holds before it splits
// into quadrants. A branch whose entry total falls back to
// LeafCapacity collapses into a leaf again.
const LeafCapacity = 8

// maxDims caps the dimensionality: every internal node carries a
// 2^dims child table, so high dimensions explode node size long
// before they make geometric sense for a quadtree.
const maxDims = 16

// maxSplitDepth stops subdivision once the quadrant width underflows
// the spacing of nearby floats, at which point equal and near-equal
// points can no longer separate. Leaves at this depth simply grow past
// LeafCapacity.
const maxSplitDepth = 52

// An Entry pairs a point with the value stored under it. The point
// slice is owned by the tree and must not be modified.
type Entry[V any] struct {
	// Point is the position the value is stored under.
	Point []float64

	// Value is the data value stored at Point.
	Value V
}

type entry[V any] struct {
	point []float64
	value V
}

// A Tree is an in-memory point-region quadtree holding values of type
// V indexed by point. The zero value is not usable; create trees with
// New or NewAutoExtent.
//
// Entries are identified by their exact point. Several entries may
// share one point, in which case lookups and removals pick among them
// arbitrarily.
type Tree[V any] struct {
	dims int
	// center and radius pin the indexed region for fixed-extent
	// trees. Auto-extent trees leave them zero and take the region
	// from wherever the root has grown to.
	center []float64
	radius float64
	auto   bool
	root   *node[V]
	size   int
}

// node is one quadrant region. A leaf holds entries directly; an
// internal node holds a child per quadrant, allocated lazily, and
// counts the entries under it.
type node[V any] struct {
	center   []float64
	radius   float64
	count    int
	entries  []entry[V]
	children []*node[V]
}

// New creates an empty quadtree over the fixed hypercube region
// spanning center±radius in every dimension. Inserting a point
// outside that region panics; use NewAutoExtent when the data's
// extent is not known up front. New panics if the center is empty or
// has more than 16 dimensions, or if the radius is not positive.
func New[V any](center []float64, radius float64) *Tree[V] {
	checkDims(len(center))
	if !(radius > 0) {
		fmtPanic("radius must be positive (got %g)", radius)
	}
	c := clonePoint(center)
	return &Tree[V]{dims: len(center), center: c, radius: radius}
}

// NewAutoExtent creates an empty quadtree whose region is not fixed:
// the root region starts around the first insert and doubles outward
// as often as needed to cover later ones. NewAutoExtent panics if
// dims is not between 1 and 16.
func NewAutoExtent[V any](dims int) *Tree[V] {
	checkDims(dims)
	return &Tree[V]{dims: dims, auto: true}
}

func checkDims(dims int) {
	if dims < 1 {
		fmtPanic("dims must be at least 1 (got %d)", dims)
	}
	if dims > maxDims {
		fmtPanic("dims must be at most %d (got %d)", maxDims, dims)
	}
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

// Center returns a copy of the center of the indexed region. For an
// auto-extent tree that has seen no inserts the region does not exist
// yet and Center returns nil.
func (t *Tree[V]) Center() []float64 {
	if t.root != nil {
		return clonePoint(t.root.center)
	}
	if t.center != nil {
		return clonePoint(t.center)
	}
	return nil
}

// Radius returns the half-width of the indexed region, or 0 for an
// auto-extent tree that has seen no inserts.
func (t *Tree[V]) Radius() float64 {
	if t.root != nil {
		return t.root.radius
	}
	return t.radius
}

// Clear removes all entries. A fixed-extent tree keeps its region; an
// auto-extent tree forgets the region it had grown.
func (t *Tree[V]) Clear() {
	t.root = nil
	t.size = 0
}

// Insert adds value to the tree at the given point. The point is
// copied, so the caller may reuse the slice. Insert panics if the
// point's dimensions do not match the tree's, or if the tree has a
// fixed region and the point lies outside it.
func (t *Tree[V]) Insert(point []float64, value V) {
	t.checkPoint(point)
	if t.root == nil {
		t.root = t.newRoot(point)
	}
	if t.auto && t.size == 0 && !t.root.contains(point) {
		// Nothing is indexed, so recenter instead of growing.
		t.root = t.newRoot(point)
	}
	for !t.root.contains(point) {
		if !t.auto {
			fmtPanic("point %s lies outside the indexed region (center %s, radius %g)",
				formatPoint(point), formatPoint(t.root.center), t.root.radius)
		}
		t.grow(point)
	}
	e := entry[V]{point: clonePoint(point), value: value}
	n := t.root
	depth := 0
	for {
		n.count++
		if n.children == nil {
			if len(n.entries) < LeafCapacity || depth == maxSplitDepth {
				n.entries = append(n.entries, e)
				break
			}
			n.split(t.dims)
		}
		n = n.ensureChild(n.quadrant(e.point), t.dims)
		depth++
	}
	t.size++
	// Growing wraps the old root without regard for fill, so a grown
	// root may sit at or below leaf capacity. Fold it back flat.
	if t.root.children != nil && t.root.count <= LeafCapacity {
		t.root.collapse()
	}
	t.debugVerify()
}

// newRoot builds the initial root region: the fixed region for New
// trees, a unit region around the first point for auto-extent trees.
func (t *Tree[V]) newRoot(point []float64) *node[V] {
	if t.auto {
		return &node[V]{center: clonePoint(point), radius: 1}
	}
	return &node[V]{center: clonePoint(t.center), radius: t.radius}
}

// grow doubles the root region away from its center toward the given
// point, wrapping the old root as one quadrant of the new one.
func (t *Tree[V]) grow(point []float64) {
	old := t.root
	center := make([]float64, t.dims)
	for d := range center {
		if point[d] >= old.center[d] {
			center[d] = old.center[d] + old.radius
		} else {
			center[d] = old.center[d] - old.radius
		}
	}
	root := &node[V]{
		center:   center,
		radius:   old.radius * 2,
		count:    old.count,
		children: make([]*node[V], 1<<t.dims),
	}
	root.children[root.quadrant(old.center)] = old
	t.root = root
}

// Get returns a value stored at the given point. The boolean result
// reports whether the point was present. Get panics if the point's
// dimensions do not match the tree's.
func (t *Tree[V]) Get(point []float64) (V, bool) {
	t.checkPoint(point)
	n := t.root
	for n != nil && n.children != nil {
		n = n.children[n.quadrant(point)]
	}
	var zero V
	if n == nil {
		return zero, false
	}
	for i := range n.entries {
		if pointsEqual(n.entries[i].point, point) {
			return n.entries[i].value, true
		}
	}
	return zero, false
}

// Contains reports whether the tree holds an entry at the given point.
func (t *Tree[V]) Contains(point []float64) bool {
	_, ok := t.Get(point)
	return ok
}

// Remove removes one entry stored at the given point and returns its
// value. The boolean result reports whether an entry was found. Any
// branch whose entry total falls back to LeafCapacity collapses into
// a single leaf. Remove panics if the point's dimensions do not match
// the tree's.
func (t *Tree[V]) Remove(point []float64) (V, bool) {
	t.checkPoint(point)
	var zero V
	if t.root == nil {
		return zero, false
	}
	v, ok := t.removeFrom(t.root, point)
	if ok {
		t.size--
		t.debugVerify()
	}
	return v, ok
}

func (t *Tree[V]) removeFrom(n *node[V], point []float64) (V, bool) {
	var zero V
	if n.children == nil {
		for i := range n.entries {
			if pointsEqual(n.entries[i].point, point) {
				v := n.entries[i].value
				copy(n.entries[i:], n.entries[i+1:])
				n.entries[len(n.entries)-1] = entry[V]{}
				n.entries = n.entries[:len(n.entries)-1]
				n.count--
				return v, true
			}
		}
		return zero, false
	}
	q := n.quadrant(point)
	c := n.children[q]
	if c == nil {
		return zero, false
	}
	v, ok := t.removeFrom(c, point)
	if !ok {
		return zero, false
	}
	n.count--
	if c.count == 0 {
		n.children[q] = nil
	}
	if n.count <= LeafCapacity {
		n.collapse()
	}
	return v, true
}

// quadrant returns the index of the quadrant the point belongs to:
// one bit per dimension, set when the point's coordinate is at or
// above the node's center. Boundary points land in the higher
// quadrant.
func (n *node[V]) quadrant(point []float64) int {
	q := 0
	for d := range point {
		if point[d] >= n.center[d] {
			q |= 1 << d
		}
	}
	return q
}

// contains reports whether the point lies inside the node's region,
// boundary included.
func (n *node[V]) contains(point []float64) bool {
	for d := range point {
		if point[d] < n.center[d]-n.radius || point[d] > n.center[d]+n.radius {
			return false
		}
	}
	return true
}

// split turns a full leaf into an internal node, dealing its entries
// out to freshly made quadrant children.
func (n *node[V]) split(dims int) {
	n.children = make([]*node[V], 1<<dims)
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		c := n.ensureChild(n.quadrant(e.point), dims)
		c.entries = append(c.entries, e)
		c.count++
	}
}

// ensureChild returns the child for quadrant q, creating it on first
// use. Child regions are derived from the parent's, so quadrants that
// never receive a point cost nothing.
func (n *node[V]) ensureChild(q, dims int) *node[V] {
	if c := n.children[q]; c != nil {
		return c
	}
	center := make([]float64, dims)
	half := n.radius / 2
	for d := range center {
		if q&(1<<d) != 0 {
			center[d] = n.center[d] + half
		} else {
			center[d] = n.center[d] - half
		}
	}
	c := &node[V]{center: center, radius: half}
	n.children[q] = c
	return c
}

// collapse folds the whole subtree back into a single leaf holding
// every entry under it.
func (n *node[V]) collapse() {
	entries := make([]entry[V], 0, n.count)
	n.gather(&entries)
	n.entries = entries
	n.children = nil
}

func (n *node[V]) gather(out *[]entry[V]) {
	if n.children == nil {
		*out = append(*out, n.entries...)
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.gather(out)
		}
	}
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
