// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kdtree

import (
	"math"
	"sort"
)

// A Neighbor is one result of a nearest neighbor query.
type Neighbor[V any] struct {
	Entry[V]

	// Dist is the Euclidean distance from the query point to the
	// entry's point.
	Dist float64
}

// NearestNeighbors returns the k entries nearest to a center point in
// ascending Euclidean distance order. Fewer than k neighbors are
// returned when the tree holds fewer than k entries. Panics if k is
// negative or the center's dimensions do not match the tree's.
//
// The search is branch and bound: it descends toward the center first
// and visits the far side of a split only while the splitting plane
// is closer than the k-th best candidate found so far.
func (t *Tree[V]) NearestNeighbors(k int, center []float64) []Neighbor[V] {
	t.checkPoint(center)
	if k < 0 {
		fmtPanic("k must not be negative (got %d)", k)
	}
	if k == 0 || t.size == 0 {
		return nil
	}
	var cands candidateList[V]
	cands.reset(k)
	t.nearestInSubtree(t.root, center, 0, &cands)
	out := make([]Neighbor[V], len(cands.nb))
	copy(out, cands.nb)
	return out
}

// nearestInSubtree refines cands with the nearest entries of the
// subtree rooted at n, which splits on axis.
func (t *Tree[V]) nearestInSubtree(n *node[V], center []float64, axis int, cands *candidateList[V]) {
	if n == nil {
		return
	}
	cands.offer(Neighbor[V]{
		Entry: Entry[V]{Point: n.point, Value: n.value},
		Dist:  pointDist(center, n.point),
	})
	next := (axis + 1) % t.dims
	near, far := n.left, n.right
	if center[axis] >= n.point[axis] {
		near, far = far, near
	}
	t.nearestInSubtree(near, center, next, cands)
	// Points on the far side are at least the splitting plane's
	// distance away, so an equal or farther plane cannot improve on
	// the current k-th best.
	if math.Abs(center[axis]-n.point[axis]) < cands.worst() {
		t.nearestInSubtree(far, center, next, cands)
	}
}

// A candidateList accumulates the k nearest candidates seen so far,
// in ascending distance order, by capped insertion sort.
type candidateList[V any] struct {
	nb []Neighbor[V]
	k  int
}

func (c *candidateList[V]) reset(k int) {
	c.k = k
	if cap(c.nb) < k {
		c.nb = make([]Neighbor[V], 0, k)
	} else {
		c.nb = c.nb[:0]
	}
}

// worst returns the k-th candidate distance, or +Inf while the list is
// not yet full. It is the pruning bound for the tree walk.
func (c *candidateList[V]) worst() float64 {
	if len(c.nb) < c.k {
		return math.Inf(1)
	}
	return c.nb[len(c.nb)-1].Dist
}

// offer inserts a candidate at its rank, dropping the candidate
// farthest from the center when the list is already full. A candidate
// ranked past k is discarded outright.
func (c *candidateList[V]) offer(n Neighbor[V]) {
	i := sort.Search(len(c.nb), func(i int) bool {
		return c.nb[i].Dist > n.Dist
	})
	if i >= c.k {
		return
	}
	if len(c.nb) < c.k {
		c.nb = append(c.nb, Neighbor[V]{})
	}
	copy(c.nb[i+1:], c.nb[i:])
	c.nb[i] = n
}
