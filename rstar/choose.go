// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"math"
	"sort"
)

// chooseSubtree descends from the root to the node at the target level
// best suited to receive an item with bounds b. Levels count upward
// from the leaves: data items descend to level 0, a node reinserted or
// split at level L descends to its container at level L+1.
func (t *RTree[V]) chooseSubtree(b *Box, level int) *node[V] {
	n := t.root
	for cur := t.height - 1; cur > level; cur-- {
		n = chooseChild(n, b, &t.cfg)
	}
	return n
}

// chooseChild picks the child of directory node n into which an item
// with bounds b should descend. Directly above the leaf level the
// winner is the child whose overlap with its siblings grows least,
// with ties broken by least area enlargement and then least area. On
// higher levels overlap does not pay for itself, so the cheaper area
// enlargement test decides alone, with ties broken by least area.
func chooseChild[V any](n *node[V], b *Box, cfg *Config) *node[V] {
	if n.items[0].child.leaf {
		return chooseChildByOverlap(n, b, cfg)
	}
	return chooseChildByArea(n, b)
}

func chooseChildByArea[V any](n *node[V], b *Box) *node[V] {
	best := -1
	bestEnl := math.Inf(1)
	bestArea := math.Inf(1)
	for i := range n.items {
		cb := &n.items[i].child.bounds
		enl := enlargement(cb, b)
		if enl > bestEnl {
			continue
		}
		area := cb.Area()
		if enl < bestEnl || area < bestArea {
			best = i
			bestEnl = enl
			bestArea = area
		}
	}
	return n.items[best].child
}

func chooseChildByOverlap[V any](n *node[V], b *Box, cfg *Config) *node[V] {
	// Rank the children by area enlargement. When there are more
	// children than the candidate cap, only the best-ranked cap of
	// them undergo the quadratic overlap test.
	rank := make([]int, len(n.items))
	enl := make([]float64, len(n.items))
	for i := range n.items {
		rank[i] = i
		enl[i] = enlargement(&n.items[i].child.bounds, b)
	}
	cands := len(rank)
	if cands > chooseSubtreeCands {
		sort.Sort(&enlargementRank{idx: rank, enl: enl})
		cands = chooseSubtreeCands
	}

	best := -1
	bestCost := math.Inf(1)
	bestEnl := math.Inf(1)
	bestArea := math.Inf(1)
	for c := 0; c < cands; c++ {
		i := rank[c]
		cb := &n.items[i].child.bounds
		ext := cb.clone()
		ext.Expand(b)
		// Overlap enlargement: how much more of the sibling boxes the
		// extended child would cover.
		cost := 0.0
		for j := range n.items {
			if j == i {
				continue
			}
			sb := &n.items[j].child.bounds
			cost += overlap(&ext, sb) - overlap(cb, sb)
		}
		if cost > bestCost {
			continue
		}
		area := cb.Area()
		if cost < bestCost || enl[i] < bestEnl || (enl[i] == bestEnl && area < bestArea) {
			best = i
			bestCost = cost
			bestEnl = enl[i]
			bestArea = area
		}
	}
	return n.items[best].child
}

// enlargementRank sorts child indices by ascending area enlargement.
// It implements sort.Interface so the reflection-free sort.Sort can be
// used on this hot path.
type enlargementRank struct {
	idx []int
	enl []float64
}

func (r *enlargementRank) Len() int {
	return len(r.idx)
}

func (r *enlargementRank) Less(i, j int) bool {
	return r.enl[r.idx[i]] < r.enl[r.idx[j]]
}

func (r *enlargementRank) Swap(i, j int) {
	r.idx[i], r.idx[j] = r.idx[j], r.idx[i]
}
