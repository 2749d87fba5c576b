// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"math"
	"sort"
)

// Load bulk loads entries into an empty tree using Sort-Tile-Recursive
// packing. The entries are tiled into fully packed leaves and the
// leaves are tiled again, level by level, up to a single root, which
// yields a far better tree far faster than inserting the entries one
// at a time. The entry boxes are copied.
//
// Panics if the tree is not empty, if entries is empty, or if an entry
// box's dimensions do not match the tree.
func (t *RTree[V]) Load(entries []Entry[V]) {
	if t.size > 0 {
		textPanic("bulk load requires an empty tree")
	} else if len(entries) == 0 {
		textPanic("bulk load requires at least one entry")
	}
	items := make([]item[V], len(entries))
	for i := range entries {
		t.checkBox(&entries[i].Box)
		items[i] = item[V]{bounds: entries[i].Box.clone(), value: entries[i].Value}
	}

	// Tile the leaf level, then tile directory levels on top of it
	// until a single node remains to become the root.
	level := t.tileLevel(items, true)
	t.nodes = len(level)
	t.height = 1
	for len(level) > 1 {
		up := make([]item[V], len(level))
		for i := range level {
			up[i] = item[V]{child: level[i]}
		}
		level = t.tileLevel(up, false)
		t.nodes += len(level)
		t.height++
	}
	t.root = level[0]
	t.root.parent = nil
	t.size = len(entries)
	t.debugVerify()
}

// tileLevel packs the items of one level into nodes. Items are sorted
// by box center one dimension at a time and cut into equal slabs, so
// that the innermost runs become spatially compact nodes.
func (t *RTree[V]) tileLevel(items []item[V], leaf bool) []*node[V] {
	max, min := t.cfg.MaxDirEntries, t.cfg.MinDirEntries
	if leaf {
		max, min = t.cfg.MaxDataEntries, t.cfg.MinDataEntries
	}
	out := make([]*node[V], 0, ceilDiv(len(items), max))
	t.tile(items, 0, max, min, leaf, &out)
	return out
}

func (t *RTree[V]) tile(items []item[V], dim, max, min int, leaf bool, out *[]*node[V]) {
	sort.Sort(&centerSort[V]{items: items, dim: dim})

	if dim == t.cfg.Dims-1 || len(items) <= max {
		// Last dimension: cut into nodes of max items. A tail run that
		// would fall below the minimum fill borrows from the run
		// before it, which cannot itself fall below the minimum since
		// max is at least twice min, less one.
		start := 0
		for start < len(items) {
			end := start + max
			if end > len(items) {
				end = len(items)
			}
			if rem := len(items) - end; rem > 0 && rem < min {
				end -= min - rem
			}
			n := newNode[V](t.cfg.Dims, leaf, max+1)
			for i := start; i < end; i++ {
				n.attach(items[i])
			}
			n.recalcMBB()
			*out = append(*out, n)
			start = end
		}
		return
	}

	// Cut the items into ceil(pages^(1/remaining)) slabs along this
	// dimension and tile each slab over the remaining dimensions. A
	// tail slab too small to fill one node is absorbed into the slab
	// before it.
	pages := ceilDiv(len(items), max)
	remaining := t.cfg.Dims - dim
	slices := int(math.Ceil(math.Pow(float64(pages), 1/float64(remaining))))
	if slices < 1 {
		slices = 1
	}
	slabSize := intPow(slices, remaining-1) * max
	start := 0
	for start < len(items) {
		end := start + slabSize
		if end > len(items) {
			end = len(items)
		}
		if rem := len(items) - end; rem > 0 && rem < min {
			end = len(items)
		}
		t.tile(items[start:end], dim+1, max, min, leaf, out)
		start = end
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func intPow(base, exp int) int {
	p := 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return p
}

// centerSort orders items by the centers of their boxes along one
// dimension. It implements sort.Interface so the reflection-free
// sort.Sort can be used on this hot path.
type centerSort[V any] struct {
	items []item[V]
	dim   int
}

func (s *centerSort[V]) Len() int {
	return len(s.items)
}

func (s *centerSort[V]) Less(i, j int) bool {
	return s.items[i].box().center(s.dim) < s.items[j].box().center(s.dim)
}

func (s *centerSort[V]) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}
