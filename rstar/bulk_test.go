// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridEntries returns n distinct unit boxes spread over a square grid.
func gridEntries(n int) []Entry[int] {
	entries := make([]Entry[int], n)
	for i := 0; i < n; i++ {
		x := float64(2 * (i % 50))
		y := float64(2 * (i / 50))
		entries[i] = Entry[int]{Box: box2(x, y, x+1, y+1), Value: i}
	}
	return entries
}

func TestRTree_Load(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		t.Run("NotEmpty", func(t *testing.T) {
			tree := New[int](2)
			tree.Insert(box2(0, 0, 1, 1), 0)

			assert.PanicsWithValue(t, "rstar: bulk load requires an empty tree", func() {
				tree.Load(gridEntries(3))
			})
		})

		t.Run("NoEntries", func(t *testing.T) {
			tree := New[int](2)

			assert.PanicsWithValue(t, "rstar: bulk load requires at least one entry", func() {
				tree.Load(nil)
			})
		})

		t.Run("DimMismatch", func(t *testing.T) {
			tree := New[int](3)

			assert.PanicsWithValue(t, "rstar: box dimensions (2/2) do not match tree dimensions (3)", func() {
				tree.Load(gridEntries(3))
			})
		})
	})

	t.Run("Structure", func(t *testing.T) {
		// Sort-Tile-Recursive packing is deterministic in the entry
		// count: with full nodes of 10, 100 entries make 10 packed
		// leaves under one root, 1000 entries make a full three level
		// tree, and 11 entries split 9/2 so the tail leaf meets its
		// minimum fill.
		testCases := []struct {
			count int
			nodes int
			depth int
		}{
			{count: 1, nodes: 1, depth: 1},
			{count: 5, nodes: 1, depth: 1},
			{count: 10, nodes: 1, depth: 1},
			{count: 11, nodes: 3, depth: 2},
			{count: 100, nodes: 11, depth: 2},
			{count: 1000, nodes: 111, depth: 3},
		}

		for _, testCase := range testCases {
			t.Run(fmt.Sprintf("count=%d", testCase.count), func(t *testing.T) {
				tree := New[int](2)

				tree.Load(gridEntries(testCase.count))

				assert.Equal(t, testCase.count, tree.Size())
				assert.Equal(t, testCase.nodes, tree.NodeCount())
				assert.Equal(t, testCase.depth, tree.Depth())
				assert.NotPanics(t, func() { tree.Stats() })
			})
		}
	})

	t.Run("EveryCountConsistent", func(t *testing.T) {
		// Sweep the counts around every node boundary so the tail
		// balancing is exercised at each remainder. The consistency
		// walk enforces the fill bounds.
		for count := 1; count <= 60; count++ {
			tree := NewWithConfig[int](Config{Dims: 2, MaxDataEntries: 5, MinDataEntries: 3, MaxDirEntries: 5, MinDirEntries: 3})

			tree.Load(gridEntries(count))

			s := tree.Stats()
			require.Equal(t, count, s.Entries, "count=%d", count)
		}
	})

	t.Run("CopiesBoxes", func(t *testing.T) {
		tree := New[int](2)
		entries := gridEntries(4)

		tree.Load(entries)
		entries[0].Box.Upper[0] = 99

		assert.True(t, tree.Contains(box2(0, 0, 1, 1)))
	})

	t.Run("QueriesAgree", func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		entries := make([]Entry[int], 500)
		for i := range entries {
			entries[i] = Entry[int]{Box: randTestBox(r, 2), Value: i}
		}
		tree := New[int](2)

		tree.Load(entries)

		require.Equal(t, 500, tree.Size())
		require.NotPanics(t, func() { tree.Stats() })
		for i := 0; i < 20; i++ {
			q := randQueryBox(r, 2)
			assertSameEntries(t, bruteQuery(entries, &q), tree.Query(q).Collect())
		}
	})

	t.Run("MutableAfterLoad", func(t *testing.T) {
		// A bulk loaded tree must accept ordinary inserts and removals.
		tree := New[int](2)
		entries := gridEntries(100)
		tree.Load(entries)

		tree.Insert(box2(500, 500, 501, 501), 100)
		v, ok := tree.Remove(entries[42].Box)

		require.True(t, ok)
		assert.Equal(t, 42, v)
		assert.Equal(t, 100, tree.Size())
		assert.NotPanics(t, func() { tree.Stats() })
		assert.True(t, tree.Contains(box2(500, 500, 501, 501)))
	})

	t.Run("ThreeDims", func(t *testing.T) {
		r := rand.New(rand.NewSource(13))
		entries := make([]Entry[int], 300)
		for i := range entries {
			entries[i] = Entry[int]{Box: randTestBox(r, 3), Value: i}
		}
		tree := New[int](3)

		tree.Load(entries)

		require.Equal(t, 300, tree.Size())
		require.NotPanics(t, func() { tree.Stats() })
		q := randQueryBox(r, 3)
		assertSameEntries(t, bruteQuery(entries, &q), tree.Query(q).Collect())
	})
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 1, ceilDiv(1, 10))
	assert.Equal(t, 1, ceilDiv(10, 10))
	assert.Equal(t, 2, ceilDiv(11, 10))
	assert.Equal(t, 10, ceilDiv(100, 10))
}

func TestIntPow(t *testing.T) {
	assert.Equal(t, 1, intPow(4, 0))
	assert.Equal(t, 4, intPow(4, 1))
	assert.Equal(t, 64, intPow(4, 3))
}

func TestCenterSort(t *testing.T) {
	items := []item[int]{
		dataItem(box2(4, 0, 6, 1), 0),
		dataItem(box2(0, 0, 2, 1), 1),
		dataItem(box2(2, 0, 4, 1), 2),
	}
	s := &centerSort[int]{items: items, dim: 0}

	require.Equal(t, 3, s.Len())
	// Centers along x: v0=5, v1=1, v2=3.
	assert.False(t, s.Less(0, 1))
	assert.True(t, s.Less(1, 0))

	s.Swap(0, 1)

	assert.Equal(t, []int{1, 0, 2}, itemValues(items))
}
