// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Stats(t *testing.T) {
	t.Run("EmptyAuto", func(t *testing.T) {
		tr := NewAutoExtent[int](2)

		assert.Equal(t, Stats{Dims: 2}, tr.Stats())
	})

	t.Run("EmptyFixed", func(t *testing.T) {
		tr := New[int](pt(50, 50), 50)

		assert.Equal(t, Stats{Dims: 2}, tr.Stats())
	})

	t.Run("NineSensors", func(t *testing.T) {
		tr := nineSensorTree()

		assert.Equal(t, Stats{Dims: 2, Entries: 9, Nodes: 5, LeafNodes: 4, InternalNodes: 1, Depth: 2}, tr.Stats())
	})

	t.Run("CountsAgree", func(t *testing.T) {
		r := rand.New(rand.NewSource(5))
		tr := New[int](pt(50, 50), 50)
		for i := 0; i < 250; i++ {
			tr.Insert(pt(r.Float64()*100, r.Float64()*100), i)
		}

		st := tr.Stats()

		assert.Equal(t, 250, st.Entries)
		assert.Equal(t, st.Nodes, st.LeafNodes+st.InternalNodes)
		assert.GreaterOrEqual(t, st.Depth, 2)
	})

	t.Run("Corruption", func(t *testing.T) {
		t.Run("EntryOutOfQuadrant", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0].entries[0].point = pt(80, 10)

			assert.PanicsWithValue(t, "qtree: entry out of its quadrant in dimension 0 (80 not in [-Inf,50))", func() {
				tr.Stats()
			})
		})

		t.Run("LeafCountMismatch", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0].count++

			assert.PanicsWithValue(t, "qtree: leaf count 4 does not match its 3 entries", func() {
				tr.Stats()
			})
		})

		t.Run("InternalBelowCapacity", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.count = 5

			assert.PanicsWithValue(t, "qtree: internal node at or below leaf capacity (5 <= 8)", func() {
				tr.Stats()
			})
		})

		t.Run("InternalCountMismatch", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.count = 20

			assert.PanicsWithValue(t, "qtree: node count 20 does not match the 9 entries under its children", func() {
				tr.Stats()
			})
		})

		t.Run("InternalHoldingEntries", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.entries = append(tr.root.entries, entry[string]{point: pt(1, 1), value: "stray"})

			assert.PanicsWithValue(t, "qtree: internal node holding entries", func() {
				tr.Stats()
			})
		})

		t.Run("ChildRadiusSkew", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0].radius = 30

			assert.PanicsWithValue(t, "qtree: child radius 30 out of step with parent radius 50", func() {
				tr.Stats()
			})
		})

		t.Run("ChildInWrongSlot", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0], tr.root.children[1] = tr.root.children[1], tr.root.children[0]

			assert.PanicsWithValue(t, "qtree: child center (75,25) filed under quadrant 0, routes to 1", func() {
				tr.Stats()
			})
		})

		t.Run("WrongChildSlotCount", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children = tr.root.children[:2]

			assert.PanicsWithValue(t, "qtree: internal node with 2 child slots (want 4)", func() {
				tr.Stats()
			})
		})

		t.Run("EmptyLeafOffRoot", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0].entries = nil
			tr.root.children[0].count = 0

			assert.PanicsWithValue(t, "qtree: empty leaf off the root", func() {
				tr.Stats()
			})
		})

		t.Run("EntryCountMismatch", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.size = 10

			assert.PanicsWithValue(t, "qtree: stats walk found 9 entries but the tree tracks 10", func() {
				tr.Stats()
			})
		})

		t.Run("WrongEntryDimensions", func(t *testing.T) {
			tr := nineSensorTree()
			require.NotPanics(t, func() { tr.Stats() })

			tr.root.children[0].entries[0].point = pt(10)

			assert.PanicsWithValue(t, "qtree: entry with 1 dimensions in a 2 dimensional tree", func() {
				tr.Stats()
			})
		})
	})
}
