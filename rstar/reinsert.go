// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import "sort"

// takeReinsertVictims removes from an overfull node the items whose
// centers lie farthest from the center of the node's box, roughly 30%
// of the node's contents and at least one, and returns them with the
// closest first. The caller reinserts them in that order, so entries
// near the node tend to come back to it while outliers find better
// homes. The node leaves with freshly computed bounds.
func takeReinsertVictims[V any](n *node[V], cfg *Config) []item[V] {
	sort.Sort(&reinsertSort[V]{items: n.items, bounds: n.bounds.clone()})
	p := len(n.items) * 3 / 10
	if p < 1 {
		p = 1
	}
	cut := len(n.items) - p
	victims := make([]item[V], p)
	copy(victims, n.items[cut:])
	for i := cut; i < len(n.items); i++ {
		n.items[i] = item[V]{}
	}
	n.items = n.items[:cut]
	n.recalcMBB()
	return victims
}

// reinsertSort orders node items by ascending distance between their
// box centers and the center of the node's box, putting the items to
// be removed at the tail. It implements sort.Interface so the
// reflection-free sort.Sort can be used on this hot path.
type reinsertSort[V any] struct {
	items  []item[V]
	bounds Box
}

func (s *reinsertSort[V]) Len() int {
	return len(s.items)
}

func (s *reinsertSort[V]) Less(i, j int) bool {
	return centerDistSq(s.items[i].box(), &s.bounds) < centerDistSq(s.items[j].box(), &s.bounds)
}

func (s *reinsertSort[V]) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}
