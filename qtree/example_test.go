// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qtree_test

import (
	"fmt"

	"github.com/gogama/spindex/qtree"
)

func ExampleTree() {
	sensors := qtree.New[string]([]float64{50, 50}, 50)
	sensors.Insert([]float64{10, 10}, "gate")
	sensors.Insert([]float64{60, 10}, "dock")
	sensors.Insert([]float64{70, 80}, "mast")

	for it := sensors.Query([]float64{0, 0}, []float64{65, 50}); it.Next(); {
		fmt.Println(it.Entry())
	}
	for _, n := range sensors.NearestNeighbors(1, []float64{65, 75}) {
		fmt.Println(n)
	}
	// Output:
	// Entry{(10,10),Value:gate}
	// Entry{(60,10),Value:dock}
	// Neighbor{(70,80),Value:mast,Dist:7.0710678}
}

func ExampleNewAutoExtent() {
	readings := qtree.NewAutoExtent[int](2)
	readings.Insert([]float64{10, 10}, 1)
	readings.Insert([]float64{13, 10}, 2)

	fmt.Println(readings.Center(), readings.Radius(), readings.Size())
	// Output:
	// [11 11] 2 2
}
