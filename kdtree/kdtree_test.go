// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kdtree

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(coords ...float64) []float64 {
	return coords
}

// sixCityTree builds this fixed shape by insertion order, with the
// root splitting on x and axes cycling below:
//
//	(2,3)a
//	  r (5,4)b
//	      l (8,1)e
//	          l (7,2)f
//	      r (9,6)c
//	          l (4,7)d
func sixCityTree() *Tree[string] {
	t := New[string](2)
	t.Insert(pt(2, 3), "a")
	t.Insert(pt(5, 4), "b")
	t.Insert(pt(9, 6), "c")
	t.Insert(pt(4, 7), "d")
	t.Insert(pt(8, 1), "e")
	t.Insert(pt(7, 2), "f")
	return t
}

func TestNew(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		testCases := []struct {
			name     string
			dims     int
			expected string
		}{
			{
				name:     "ZeroDims",
				dims:     0,
				expected: "kdtree: dims must be at least 1 (got 0)",
			},
			{
				name:     "NegativeDims",
				dims:     -3,
				expected: "kdtree: dims must be at least 1 (got -3)",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.PanicsWithValue(t, tc.expected, func() {
					New[int](tc.dims)
				})
			})
		}
	})

	t.Run("Success", func(t *testing.T) {
		tr := New[int](2)

		assert.Equal(t, 2, tr.Dims())
		assert.Equal(t, 0, tr.Size())
		assert.Nil(t, tr.root)
	})
}

func TestTree_Insert(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		tr := New[int](2)

		assert.PanicsWithValue(t, "kdtree: point dimensions (3) do not match tree dimensions (2)", func() {
			tr.Insert(pt(1, 2, 3), 0)
		})
	})

	t.Run("Single", func(t *testing.T) {
		tr := New[string](2)

		tr.Insert(pt(1, 2), "only")

		assert.Equal(t, 1, tr.Size())
		v, ok := tr.Get(pt(1, 2))
		require.True(t, ok)
		assert.Equal(t, "only", v)
	})

	t.Run("CopiesPoint", func(t *testing.T) {
		tr := New[string](2)
		p := pt(1, 2)

		tr.Insert(p, "pinned")
		p[0] = 99

		assert.True(t, tr.Contains(pt(1, 2)))
		assert.False(t, tr.Contains(pt(99, 2)))
	})

	t.Run("TieGoesRight", func(t *testing.T) {
		tr := New[string](2)

		tr.Insert(pt(5, 5), "pivot")
		tr.Insert(pt(5, 9), "tie")

		require.NotNil(t, tr.root)
		assert.Nil(t, tr.root.left)
		require.NotNil(t, tr.root.right)
		assert.Equal(t, "tie", tr.root.right.value)
	})

	t.Run("DuplicatePoints", func(t *testing.T) {
		tr := New[int](2)

		tr.Insert(pt(4, 4), 1)
		tr.Insert(pt(4, 4), 2)

		assert.Equal(t, 2, tr.Size())
		_, ok := tr.Remove(pt(4, 4))
		assert.True(t, ok)
		_, ok = tr.Remove(pt(4, 4))
		assert.True(t, ok)
		_, ok = tr.Remove(pt(4, 4))
		assert.False(t, ok)
		assert.Equal(t, 0, tr.Size())
	})
}

func TestTree_Get(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		tr := New[int](3)

		assert.PanicsWithValue(t, "kdtree: point dimensions (2) do not match tree dimensions (3)", func() {
			tr.Get(pt(1, 2))
		})
	})

	t.Run("EmptyTree", func(t *testing.T) {
		tr := New[int](2)

		_, ok := tr.Get(pt(0, 0))

		assert.False(t, ok)
	})

	t.Run("PresentAndMissing", func(t *testing.T) {
		tr := sixCityTree()

		v, ok := tr.Get(pt(8, 1))
		require.True(t, ok)
		assert.Equal(t, "e", v)
		_, ok = tr.Get(pt(8, 2))
		assert.False(t, ok)
	})
}

func TestTree_Remove(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		tr := New[int](2)

		assert.PanicsWithValue(t, "kdtree: point dimensions (1) do not match tree dimensions (2)", func() {
			tr.Remove(pt(1))
		})
	})

	t.Run("EmptyTree", func(t *testing.T) {
		tr := New[int](2)

		_, ok := tr.Remove(pt(1, 2))

		assert.False(t, ok)
		assert.Equal(t, 0, tr.Size())
	})

	t.Run("Missing", func(t *testing.T) {
		tr := sixCityTree()

		_, ok := tr.Remove(pt(3, 3))

		assert.False(t, ok)
		assert.Equal(t, 6, tr.Size())
	})

	t.Run("LeafRoot", func(t *testing.T) {
		tr := New[string](2)
		tr.Insert(pt(1, 1), "gone")

		v, ok := tr.Remove(pt(1, 1))

		require.True(t, ok)
		assert.Equal(t, "gone", v)
		assert.Equal(t, 0, tr.Size())
		assert.Nil(t, tr.root)
	})

	// The root is replaced by the minimum of its right subtree on the
	// root's split dimension, here (7,6).
	t.Run("ReplacesFromRightSubtree", func(t *testing.T) {
		tr := New[string](2)
		tr.Insert(pt(5, 5), "a")
		tr.Insert(pt(3, 8), "b")
		tr.Insert(pt(8, 2), "c")
		tr.Insert(pt(7, 6), "d")
		tr.Insert(pt(9, 9), "e")

		v, ok := tr.Remove(pt(5, 5))

		require.True(t, ok)
		assert.Equal(t, "a", v)
		assert.Equal(t, 4, tr.Size())
		assert.Equal(t, pt(7, 6), tr.root.point)
		assert.Equal(t, "d", tr.root.value)
		require.NotPanics(t, func() { tr.Stats() })
		for _, p := range [][]float64{pt(3, 8), pt(8, 2), pt(7, 6), pt(9, 9)} {
			assert.True(t, tr.Contains(p), "lost %v", p)
		}
		assert.False(t, tr.Contains(pt(5, 5)))
	})

	// With no right subtree the replacement comes from the left, and
	// the remaining left subtree must end up hanging right.
	t.Run("ReplacesFromLeftSubtree", func(t *testing.T) {
		tr := New[string](2)
		tr.Insert(pt(5, 5), "a")
		tr.Insert(pt(3, 8), "b")
		tr.Insert(pt(2, 2), "c")

		v, ok := tr.Remove(pt(5, 5))

		require.True(t, ok)
		assert.Equal(t, "a", v)
		assert.Equal(t, pt(2, 2), tr.root.point)
		assert.Equal(t, "c", tr.root.value)
		assert.Nil(t, tr.root.left)
		require.NotNil(t, tr.root.right)
		assert.Equal(t, "b", tr.root.right.value)
		require.NotPanics(t, func() { tr.Stats() })
	})

	t.Run("RemoveAll", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		tr := New[int](2)
		points := make([][]float64, 0, 40)
		for i := 0; i < 40; i++ {
			p := pt(r.Float64()*100, r.Float64()*100)
			points = append(points, p)
			tr.Insert(p, i)
		}
		r.Shuffle(len(points), func(i, j int) {
			points[i], points[j] = points[j], points[i]
		})

		for i, p := range points {
			_, ok := tr.Remove(p)
			require.True(t, ok, "remove %d of 40", i)
			require.NotPanics(t, func() { tr.Stats() })
		}

		assert.Equal(t, 0, tr.Size())
		assert.Nil(t, tr.root)
	})
}

func TestTree_Clear(t *testing.T) {
	tr := sixCityTree()

	tr.Clear()

	assert.Equal(t, 0, tr.Size())
	assert.Nil(t, tr.root)
	assert.False(t, tr.Contains(pt(2, 3)))
}

func TestFindMin(t *testing.T) {
	tr := sixCityTree()

	t.Run("FirstDimension", func(t *testing.T) {
		min := findMin(tr.root, 0, 0, 2)

		require.NotNil(t, min)
		assert.Equal(t, pt(2, 3), min.point)
	})

	t.Run("SecondDimension", func(t *testing.T) {
		min := findMin(tr.root, 1, 0, 2)

		require.NotNil(t, min)
		assert.Equal(t, pt(8, 1), min.point)
	})

	t.Run("EmptySubtree", func(t *testing.T) {
		assert.Nil(t, findMin[string](nil, 0, 0, 2))
	})
}

func TestPointsEqual(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []float64
		expected bool
	}{
		{
			name:     "Equal",
			a:        pt(1, 2, 3),
			b:        pt(1, 2, 3),
			expected: true,
		},
		{
			name:     "LengthMismatch",
			a:        pt(1, 2),
			b:        pt(1, 2, 3),
			expected: false,
		},
		{
			name:     "CoordinateMismatch",
			a:        pt(1, 2, 3),
			b:        pt(1, 2, 4),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pointsEqual(tc.a, tc.b))
		})
	}
}

func TestPointDist(t *testing.T) {
	assert.Equal(t, 5.0, pointDist(pt(0, 0), pt(3, 4)))
	assert.Equal(t, 0.0, pointDist(pt(7, 7), pt(7, 7)))
	assert.Equal(t, math.Sqrt(2), pointDist(pt(1, 1), pt(2, 2)))
}

// journal mirrors the tree's contents for the randomized test. Points
// are kept unique so membership stays unambiguous.
type journal struct {
	values map[string]int
	points [][]float64
}

func newJournal() *journal {
	return &journal{values: make(map[string]int)}
}

func (j *journal) key(p []float64) string {
	return fmt.Sprint(p)
}

func (j *journal) add(p []float64, v int) bool {
	k := j.key(p)
	if _, dup := j.values[k]; dup {
		return false
	}
	j.values[k] = v
	j.points = append(j.points, p)
	return true
}

func (j *journal) removeAt(i int) ([]float64, int) {
	p := j.points[i]
	k := j.key(p)
	v := j.values[k]
	delete(j.values, k)
	j.points[i] = j.points[len(j.points)-1]
	j.points = j.points[:len(j.points)-1]
	return p, v
}

func (j *journal) bruteWindow(min, max []float64) []int {
	var values []int
	for _, p := range j.points {
		in := true
		for d := range p {
			if p[d] < min[d] || p[d] > max[d] {
				in = false
				break
			}
		}
		if in {
			values = append(values, j.values[j.key(p)])
		}
	}
	sort.Ints(values)
	return values
}

func (j *journal) bruteNearest(k int, center []float64) []float64 {
	dists := make([]float64, 0, len(j.points))
	for _, p := range j.points {
		var sum float64
		for d := range center {
			diff := center[d] - p[d]
			sum += diff * diff
		}
		dists = append(dists, math.Sqrt(sum))
	}
	sort.Float64s(dists)
	if k > len(dists) {
		k = len(dists)
	}
	return dists[:k]
}

func TestTree_Randomized(t *testing.T) {
	testCases := []struct {
		name string
		dims int
		seed int64
	}{
		{name: "OneDim", dims: 1, seed: 1},
		{name: "TwoDims", dims: 2, seed: 2},
		{name: "ThreeDims", dims: 3, seed: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := rand.New(rand.NewSource(tc.seed))
			tr := New[int](tc.dims)
			j := newJournal()
			nextValue := 0

			randPoint := func() []float64 {
				p := make([]float64, tc.dims)
				for d := range p {
					p[d] = r.Float64() * 100
				}
				return p
			}

			for round := 0; round < 30; round++ {
				for op := 0; op < 30; op++ {
					if len(j.points) == 0 || r.Float64() < 0.6 {
						p := randPoint()
						if !j.add(p, nextValue) {
							continue
						}
						tr.Insert(p, nextValue)
						nextValue++
					} else {
						p, want := j.removeAt(r.Intn(len(j.points)))
						got, ok := tr.Remove(p)
						require.True(t, ok, "round %d: remove %v", round, p)
						require.Equal(t, want, got)
					}
				}

				var st Stats
				require.NotPanics(t, func() { st = tr.Stats() }, "round %d", round)
				require.Equal(t, len(j.points), st.Entries, "round %d", round)

				min := randPoint()
				max := make([]float64, tc.dims)
				for d := range max {
					max[d] = min[d] + r.Float64()*30
				}
				var got []int
				for it := tr.Query(min, max); it.Next(); {
					got = append(got, it.Entry().Value)
				}
				sort.Ints(got)
				require.Equal(t, j.bruteWindow(min, max), got, "round %d", round)

				center := randPoint()
				k := r.Intn(8)
				neighbors := tr.NearestNeighbors(k, center)
				dists := make([]float64, len(neighbors))
				for i, n := range neighbors {
					dists[i] = n.Dist
				}
				require.Equal(t, j.bruteNearest(k, center), dists, "round %d", round)
			}

			for _, p := range j.points {
				v, ok := tr.Get(p)
				require.True(t, ok, "final sweep lost %v", p)
				require.Equal(t, j.values[j.key(p)], v)
			}
		})
	}
}
