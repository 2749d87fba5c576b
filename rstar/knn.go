// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"math"
	"sort"
)

// A DistanceFunc measures the distance from a query point to a box.
// The k nearest neighbor search assumes the metric of a box never
// exceeds the metric of anything inside it, which holds for
// EdgeDistance. A custom function that reports larger distances for a
// node's box than for the entries under it breaks that assumption, and
// the search may then skip true neighbors.
type DistanceFunc func(p []float64, b *Box) float64

// A Neighbor is one result of a nearest neighbor query.
type Neighbor[V any] struct {
	Entry[V]

	// Dist is the distance from the query point to the entry's box as
	// measured by the query's distance function.
	Dist float64
}

// A KNNIterator yields the k entries nearest to a center point in
// ascending distance order. Iterators are created by NearestNeighbors
// and may be repositioned with Reset to run further queries without
// allocating. Fewer than k neighbors are yielded when the tree holds
// fewer than k entries.
//
// The search runs eagerly: it expands a search radius around the
// center until the k nearest entries are provably inside, then serves
// them one at a time. Modifying the tree after the iterator was
// created or last Reset does not affect the results it serves.
type KNNIterator[V any] struct {
	tree  *RTree[V]
	dist  DistanceFunc
	cands candidateList[V]
	pos   int
	cur   int
}

// NearestNeighbors begins a k nearest neighbor query around a center
// point using the EdgeDistance metric. Panics if k is negative or the
// center's dimensions do not match the tree.
func (t *RTree[V]) NearestNeighbors(k int, center []float64) *KNNIterator[V] {
	return t.NearestNeighborsFunc(k, center, EdgeDistance)
}

// NearestNeighborsFunc is NearestNeighbors with a caller-supplied
// distance function. See DistanceFunc for the property the function
// must satisfy. Panics if dist is nil, k is negative, or the center's
// dimensions do not match the tree.
func (t *RTree[V]) NearestNeighborsFunc(k int, center []float64, dist DistanceFunc) *KNNIterator[V] {
	if dist == nil {
		textPanic("nil distance function")
	}
	it := &KNNIterator[V]{tree: t, dist: dist}
	it.Reset(k, center)
	return it
}

// Reset restarts the iterator with a new k and center, keeping the
// distance function and reusing the iterator's internal storage.
// Panics if k is negative or the center's dimensions do not match the
// tree.
func (it *KNNIterator[V]) Reset(k int, center []float64) {
	t := it.tree
	t.checkPoint(center)
	if k < 0 {
		fmtPanic("k must not be negative (got %d)", k)
	}
	it.pos = 0
	it.cur = -1
	it.cands.reset(k)
	if k == 0 || t.size == 0 {
		return
	}
	it.search(center, k)
}

// search fills the candidate list with the k nearest entries. It
// estimates a starting radius, collects the nearest candidates within
// it, and doubles the radius until enough candidates exist and the
// k-th of them lies well inside the radius, so that no unvisited
// subtree can hold anything nearer.
func (it *KNNIterator[V]) search(center []float64, k int) {
	t := it.tree
	radius := t.estimateRadius(center, k)
	for {
		it.cands.reset(k)
		searchBranch(t.root, center, radius, it.dist, &it.cands)
		if it.cands.len() == t.size {
			return
		}
		if it.cands.len() >= k && it.cands.worst() <= radius/2 {
			return
		}
		radius *= 2
	}
}

// estimateRadius guesses a starting search radius: the distance to the
// farthest corner of the deepest node whose box contains the center.
// Everything in that node lies within the estimate, so it errs toward
// finding too much rather than too little. When the node holds fewer
// than k items the estimate is doubled, since the k nearest then
// likely spill past the node.
func (t *RTree[V]) estimateRadius(center []float64, k int) float64 {
	n := t.root
	for !n.leaf {
		var next *node[V]
		for i := range n.items {
			if n.items[i].child.bounds.ContainsPoint(center) {
				next = n.items[i].child
				break
			}
		}
		if next == nil {
			break
		}
		n = next
	}
	r := farCornerDist(center, &n.bounds)
	if len(n.items) < k {
		r *= 2
	}
	if r == 0 {
		// A zero radius cannot grow by doubling.
		r = 1
	}
	return r
}

// searchBranch walks the subtree under n depth first, skipping any
// subtree farther from the center than the radius or than the current
// k-th candidate distance, and offers every surviving entry to the
// candidate list.
func searchBranch[V any](n *node[V], center []float64, radius float64, dist DistanceFunc, cands *candidateList[V]) {
	if n.leaf {
		for i := range n.items {
			d := dist(center, &n.items[i].bounds)
			if d <= radius {
				cands.offer(Neighbor[V]{Entry: n.items[i].entry(), Dist: d})
			}
		}
		return
	}
	for i := range n.items {
		c := n.items[i].child
		bound := radius
		if w := cands.worst(); w < bound {
			bound = w
		}
		if dist(center, &c.bounds) <= bound {
			searchBranch(c, center, radius, dist, cands)
		}
	}
}

// Next advances to the next neighbor in ascending distance order,
// reporting whether one exists.
func (it *KNNIterator[V]) Next() bool {
	if it.pos < it.cands.len() {
		it.cur = it.pos
		it.pos++
		return true
	}
	it.cur = -1
	return false
}

// Neighbor returns the neighbor the iterator is positioned on. It must
// only be called after Next has returned true; calling it in any other
// state panics.
func (it *KNNIterator[V]) Neighbor() Neighbor[V] {
	if it.cur < 0 {
		textPanic("iterator is not positioned on a neighbor")
	}
	return it.cands.nb[it.cur]
}

// Collect drains the iterator, returning all remaining neighbors in
// ascending distance order.
func (it *KNNIterator[V]) Collect() []Neighbor[V] {
	var nbs []Neighbor[V]
	for it.Next() {
		nbs = append(nbs, it.Neighbor())
	}
	return nbs
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

func (c *candidateList[V]) len() int {
	return len(c.nb)
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

// NearestNeighbor returns the entry nearest to the center point by
// edge distance, or false if the tree is empty. It is equivalent to a
// k = 1 nearest neighbor query but prunes with the MinMax distance
// bound: the distance within which a subtree is guaranteed to hold at
// least one entry. Panics if the center's dimensions do not match the
// tree.
func (t *RTree[V]) NearestNeighbor(center []float64) (Neighbor[V], bool) {
	t.checkPoint(center)
	if t.size == 0 {
		return Neighbor[V]{}, false
	}
	best := Neighbor[V]{Dist: math.Inf(1)}
	nearestInBranch(t.root, center, &best)
	return best, true
}

// nearestInBranch refines best with the nearest entry of the subtree
// under n. Children are visited in ascending edge distance order, and
// a child is skipped once its edge distance exceeds both the best
// distance so far and the tightest MinMax distance any sibling
// guarantees.
func nearestInBranch[V any](n *node[V], center []float64, best *Neighbor[V]) {
	if n.leaf {
		for i := range n.items {
			d := EdgeDistance(center, &n.items[i].bounds)
			if d < best.Dist {
				*best = Neighbor[V]{Entry: n.items[i].entry(), Dist: d}
			}
		}
		return
	}

	order := make(nearestChildren[V], len(n.items))
	guarantee := math.Inf(1)
	for i := range n.items {
		c := n.items[i].child
		order[i] = nearestChild[V]{c: c, edge: EdgeDistance(center, &c.bounds)}
		if mm := minMaxDist(center, &c.bounds); mm < guarantee {
			guarantee = mm
		}
	}
	sort.Sort(order)

	for i := range order {
		bound := best.Dist
		if guarantee < bound {
			bound = guarantee
		}
		if order[i].edge > bound {
			break
		}
		nearestInBranch(order[i].c, center, best)
	}
}

type nearestChild[V any] struct {
	c    *node[V]
	edge float64
}

// nearestChildren orders children by ascending edge distance from the
// query point. It implements sort.Interface so the reflection-free
// sort.Sort can be used on this hot path.
type nearestChildren[V any] []nearestChild[V]

func (nc nearestChildren[V]) Len() int {
	return len(nc)
}

func (nc nearestChildren[V]) Less(i, j int) bool {
	return nc[i].edge < nc[j].edge
}

func (nc nearestChildren[V]) Swap(i, j int) {
	nc[i], nc[j] = nc[j], nc[i]
}
