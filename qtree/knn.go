// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qtree

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
// The search expands a radius around the center: it collects the
// nearest candidates within an estimated radius and doubles it until
// enough candidates exist and the k-th of them lies well inside the
// radius, so that no unvisited quadrant can hold anything nearer.
func (t *Tree[V]) NearestNeighbors(k int, center []float64) []Neighbor[V] {
	t.checkPoint(center)
	if k < 0 {
		fmtPanic("k must not be negative (got %d)", k)
	}
	if k == 0 || t.size == 0 {
		return nil
	}
	var cands candidateList[V]
	radius := t.estimateRadius(center, k)
	for {
		cands.reset(k)
		t.searchNode(t.root, center, radius, &cands)
		if len(cands.nb) == t.size {
			break
		}
		if len(cands.nb) >= k && cands.worst() <= radius/2 {
			break
		}
		radius *= 2
	}
	out := make([]Neighbor[V], len(cands.nb))
	copy(out, cands.nb)
	return out
}

// estimateRadius guesses a starting search radius: the distance to
// the farthest corner of the deepest quadrant containing the center.
// Everything in that quadrant lies within the estimate, so it errs
// toward finding too much rather than too little. When the quadrant
// holds fewer than k entries the estimate is doubled, since the k
// nearest then likely spill past it.
func (t *Tree[V]) estimateRadius(center []float64, k int) float64 {
	n := t.root
	for n.children != nil {
		c := n.children[n.quadrant(center)]
		if c == nil {
			break
		}
		n = c
	}
	var sum float64
	for d := range center {
		lo := math.Abs(center[d] - (n.center[d] - n.radius))
		hi := math.Abs(center[d] - (n.center[d] + n.radius))
		diff := lo
		if hi > diff {
			diff = hi
		}
		sum += diff * diff
	}
	r := math.Sqrt(sum)
	if n.count < k {
		r *= 2
	}
	if r == 0 {
		// A zero radius cannot grow by doubling.
		r = 1
	}
	return r
}

// searchNode walks the subtree under n depth first, skipping any
// quadrant farther from the center than the radius or than the
// current k-th candidate distance, and offers every surviving entry
// within the radius to the candidate list.
func (t *Tree[V]) searchNode(n *node[V], center []float64, radius float64, cands *candidateList[V]) {
	if n.children == nil {
		for i := range n.entries {
			d := pointDist(center, n.entries[i].point)
			if d <= radius {
				cands.offer(Neighbor[V]{
					Entry: Entry[V]{Point: n.entries[i].point, Value: n.entries[i].value},
					Dist:  d,
				})
			}
		}
		return
	}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		bound := radius
		if w := cands.worst(); w < bound {
			bound = w
		}
		if regionDist(center, c) <= bound {
			t.searchNode(c, center, radius, cands)
		}
	}
}

// regionDist returns the Euclidean distance from a point to the
// nearest face of the node's region, or 0 when the point is inside.
func regionDist[V any](p []float64, n *node[V]) float64 {
	var sum float64
	for d := range p {
		if diff := (n.center[d] - n.radius) - p[d]; diff > 0 {
			sum += diff * diff
		} else if diff := p[d] - (n.center[d] + n.radius); diff > 0 {
			sum += diff * diff
		}
	}
	return math.Sqrt(sum)
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
