// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"math"
	"sort"
)

// splitNode distributes the items of an overfull node between the node
// and a fresh sibling, returning the sibling. The split axis is the
// one whose candidate distributions have the least total margin, taken
// over both sort orders. The distribution along that axis is the one
// with the least overlap between the two group boxes, with ties broken
// by the least dead space. Both nodes leave with freshly computed
// bounds.
func splitNode[V any](n *node[V], cfg *Config) *node[V] {
	m := n.minItems(cfg)
	total := len(n.items)

	axis := chooseSplitAxis(n.items, cfg.Dims, m)
	byUpper, k := chooseSplitIndex(n.items, axis, m)
	sort.Sort(&splitSort[V]{items: n.items, dim: axis, byUpper: byUpper})

	sib := newNode[V](cfg.Dims, n.leaf, n.maxItems(cfg)+1)
	for i := k; i < total; i++ {
		sib.attach(n.items[i])
		n.items[i] = item[V]{}
	}
	n.items = n.items[:k]
	n.recalcMBB()
	sib.recalcMBB()
	return sib
}

// chooseSplitAxis returns the dimension whose candidate distributions
// have the least total margin. For each dimension the items are sorted
// first by lower and then by upper coordinate, and the margins of both
// group boxes of every legal distribution of both orders are summed.
func chooseSplitAxis[V any](items []item[V], dims, m int) int {
	axis := 0
	bestMargin := math.Inf(1)
	for d := 0; d < dims; d++ {
		s := marginSum(items, d, false, m) + marginSum(items, d, true, m)
		if s < bestMargin {
			bestMargin = s
			axis = d
		}
	}
	return axis
}

func marginSum[V any](items []item[V], dim int, byUpper bool, m int) float64 {
	sort.Sort(&splitSort[V]{items: items, dim: dim, byUpper: byUpper})
	lead, trail := cumulativeBoxes(items)
	s := 0.0
	for k := m; k <= len(items)-m; k++ {
		s += lead[k-1].Margin() + trail[k].Margin()
	}
	return s
}

// chooseSplitIndex returns the sort order and group boundary of the
// winning distribution along the split axis: the first group takes the
// k lowest-sorted items and the second group the rest, where k ranges
// over every boundary leaving both groups at least m items.
func chooseSplitIndex[V any](items []item[V], axis, m int) (byUpper bool, k int) {
	bestOverlap := math.Inf(1)
	bestDead := math.Inf(1)
	itemArea := 0.0
	for i := range items {
		itemArea += items[i].box().Area()
	}
	for _, upper := range [2]bool{false, true} {
		sort.Sort(&splitSort[V]{items: items, dim: axis, byUpper: upper})
		lead, trail := cumulativeBoxes(items)
		for cut := m; cut <= len(items)-m; cut++ {
			ov := overlap(&lead[cut-1], &trail[cut])
			if ov > bestOverlap {
				continue
			}
			dead := lead[cut-1].Area() + trail[cut].Area() - itemArea
			if ov < bestOverlap || dead < bestDead {
				bestOverlap = ov
				bestDead = dead
				byUpper = upper
				k = cut
			}
		}
	}
	return byUpper, k
}

// cumulativeBoxes returns running bounding boxes over the items in
// their current order: lead[i] bounds items[0..i] and trail[i] bounds
// items[i..len-1]. A distribution cut at k is then described by
// lead[k-1] and trail[k].
func cumulativeBoxes[V any](items []item[V]) (lead, trail []Box) {
	dims := len(items[0].box().Lower)
	lead = make([]Box, len(items))
	trail = make([]Box, len(items))
	b := EmptyBox(dims)
	for i := 0; i < len(items); i++ {
		b.Expand(items[i].box())
		lead[i] = b.clone()
	}
	b = EmptyBox(dims)
	for i := len(items) - 1; i >= 0; i-- {
		b.Expand(items[i].box())
		trail[i] = b.clone()
	}
	return lead, trail
}

// splitSort orders node items along one axis, by lower coordinate with
// the upper as tiebreak, or the reverse when byUpper is set. It
// implements sort.Interface so the reflection-free sort.Sort can be
// used on this hot path.
type splitSort[V any] struct {
	items   []item[V]
	dim     int
	byUpper bool
}

func (s *splitSort[V]) Len() int {
	return len(s.items)
}

func (s *splitSort[V]) Less(i, j int) bool {
	a, b := s.items[i].box(), s.items[j].box()
	if s.byUpper {
		if a.Upper[s.dim] != b.Upper[s.dim] {
			return a.Upper[s.dim] < b.Upper[s.dim]
		}
		return a.Lower[s.dim] < b.Lower[s.dim]
	}
	if a.Lower[s.dim] != b.Lower[s.dim] {
		return a.Lower[s.dim] < b.Lower[s.dim]
	}
	return a.Upper[s.dim] < b.Upper[s.dim]
}

func (s *splitSort[V]) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}
