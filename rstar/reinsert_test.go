// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box1(lo, hi float64) Box {
	return NewBox([]float64{lo}, []float64{hi})
}

func TestTakeReinsertVictims(t *testing.T) {
	cfg := Config{Dims: 1, MaxDataEntries: 4, MinDataEntries: 2, MaxDirEntries: 4, MinDirEntries: 2}

	t.Run("OneVictim", func(t *testing.T) {
		// Node bounds [0,12], center 6. Center distances by value:
		// v0=4, v1=1.5, v2=0, v3=2, v4=5, so v4 is the outlier.
		n := newNode[int](1, true, 6)
		n.attach(item[int]{bounds: box1(0, 4), value: 0})
		n.attach(item[int]{bounds: box1(4, 5), value: 1})
		n.attach(item[int]{bounds: box1(5, 7), value: 2})
		n.attach(item[int]{bounds: box1(7, 9), value: 3})
		n.attach(item[int]{bounds: box1(10, 12), value: 4})
		n.recalcMBB()

		victims := takeReinsertVictims(n, &cfg)

		require.Len(t, victims, 1)
		assert.Equal(t, 4, victims[0].value)
		require.Len(t, n.items, 4)
		expected := box1(0, 9)
		assert.True(t, n.bounds.Equal(&expected), "n.bounds = %s", &n.bounds)
	})

	t.Run("ThirtyPercentClosestFirst", func(t *testing.T) {
		// A wide anchor pins the bounds to [0,20], center 10. The other
		// nine items are points with center distances 1 through 9, so
		// ten items shed the three farthest, closest of them first.
		n := newNode[int](1, true, 11)
		n.attach(item[int]{bounds: box1(0, 20), value: 0})
		for i, x := range []float64{11, 8, 13, 6, 15, 4, 17, 2, 19} {
			n.attach(item[int]{bounds: box1(x, x), value: i + 1})
		}
		n.recalcMBB()

		victims := takeReinsertVictims(n, &cfg)

		require.Len(t, victims, 3)
		assert.Equal(t, []int{7, 8, 9}, itemValues(victims))
		require.Len(t, n.items, 7)
		expected := box1(0, 20)
		assert.True(t, n.bounds.Equal(&expected))
	})
}

func TestReinsertSort(t *testing.T) {
	bounds := box1(0, 10)
	items := []item[int]{
		{bounds: box1(9, 9), value: 0},
		{bounds: box1(5, 5), value: 1},
		{bounds: box1(3, 3), value: 2},
	}
	s := &reinsertSort[int]{items: items, bounds: bounds}

	require.Equal(t, 3, s.Len())
	// Distances from center 5: v0=4, v1=0, v2=2.
	assert.False(t, s.Less(0, 1))
	assert.True(t, s.Less(1, 0))
	assert.True(t, s.Less(2, 0))

	s.Swap(0, 2)

	assert.Equal(t, []int{2, 1, 0}, itemValues(items))
}
