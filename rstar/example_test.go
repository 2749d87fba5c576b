// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar_test

import (
	"fmt"

	"github.com/gogama/spindex/rstar"
)

func ExampleRTree() {
	tree := rstar.New[string](2)
	tree.Insert(rstar.NewBox([]float64{1, 1}, []float64{2, 2}), "cafe")
	tree.Insert(rstar.NewBox([]float64{4, 1}, []float64{5, 3}), "library")
	tree.Insert(rstar.NewBox([]float64{8, 8}, []float64{9, 9}), "park")

	it := tree.Query(rstar.NewBox([]float64{0, 0}, []float64{4, 4}))
	for it.Next() {
		fmt.Println(it.Entry())
	}

	if nn, ok := tree.NearestNeighbor([]float64{7, 7}); ok {
		fmt.Println(nn)
	}
	// Output:
	// Entry{[1,1,2,2],Value:cafe}
	// Entry{[4,1,5,3],Value:library}
	// Neighbor{[8,8,9,9],Value:park,Dist:1.4142136}
}

func ExampleRTree_Load() {
	entries := []rstar.Entry[int]{
		{Box: rstar.Point([]float64{1, 1}), Value: 1},
		{Box: rstar.Point([]float64{2, 2}), Value: 2},
		{Box: rstar.Point([]float64{5, 5}), Value: 3},
	}
	tree := rstar.New[int](2)
	tree.Load(entries)

	fmt.Println(tree.Size(), tree.Depth())

	it := tree.NearestNeighbors(2, []float64{0, 0})
	for it.Next() {
		fmt.Println(it.Neighbor())
	}
	// Output:
	// 3 1
	// Neighbor{[1,1,1,1],Value:1,Dist:1.4142136}
	// Neighbor{[2,2,2,2],Value:2,Dist:2.8284271}
}

func ExampleRTree_Update() {
	tree := rstar.New[string](2)
	dock := rstar.NewBox([]float64{0, 0}, []float64{1, 1})
	bay := rstar.NewBox([]float64{6, 6}, []float64{7, 7})
	tree.Insert(dock, "ferry")

	if _, ok := tree.Update(dock, bay); ok {
		fmt.Println(tree.Contains(dock), tree.Contains(bay))
	}
	// Output:
	// false true
}
