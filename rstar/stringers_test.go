// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_String(t *testing.T) {
	testCases := []struct {
		name     string
		input    Box
		expected string
	}{
		{"Zero", box2(0, 0, 0, 0), "[0,0,0,0]"},
		{"Integers", box2(-1, 2, 3, 4), "[-1,2,3,4]"},
		{"OneDim", box1(-1, 2), "[-1,2]"},
		{"Exact", box2(-100.5, -200.25, 1234.125, 5678.0625), "[-100.5,-200.25,1234.125,5678.0625]"},
		{
			name:     "Rounded",
			input:    Box{Lower: []float64{-100000.0625, -2.001953125}, Upper: []float64{99.0078125, 123.015625}},
			expected: "[-100000.06,-2.0019531,99.007812,123.01562]",
		},
		{"Empty", EmptyBox(2), "[+Inf,+Inf,-Inf,-Inf]"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := testCase.input.String()

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestEntry_String(t *testing.T) {
	e := Entry[string]{Box: box2(0, 0, 1, 1), Value: "depot"}

	assert.Equal(t, "Entry{[0,0,1,1],Value:depot}", e.String())
}

func TestNeighbor_String(t *testing.T) {
	n := Neighbor[string]{Entry: Entry[string]{Box: box2(0, 0, 1, 1), Value: "depot"}, Dist: 1.5}

	assert.Equal(t, "Neighbor{[0,0,1,1],Value:depot,Dist:1.5}", n.String())
}

func TestRTree_String(t *testing.T) {
	tree := New[int](2)

	assert.Equal(t, "RTree{Bounds:[+Inf,+Inf,-Inf,-Inf],Size:0,Depth:1,Nodes:1}", tree.String())

	tree.Insert(box2(0, 0, 1, 1), 0)

	assert.Equal(t, "RTree{Bounds:[0,0,1,1],Size:1,Depth:1,Nodes:1}", tree.String())
}

func TestRTree_StringTree(t *testing.T) {
	tree := New[string](2)
	tree.Insert(box2(0, 0, 1, 1), "a")
	tree.Insert(box2(2, 2, 3, 3), "b")

	actual := tree.StringTree()

	expected := "RTree{Bounds:[0,0,3,3],Size:2,Depth:1,Nodes:1}\n" +
		"leaf [0,0,3,3] n=2\n" +
		"  ent [0,0,1,1] a\n" +
		"  ent [2,2,3,3] b\n"
	assert.Equal(t, expected, actual)
}

func TestRTree_StringTree_TwoLevels(t *testing.T) {
	tree := twoLevelTree()

	actual := tree.StringTree()

	// One line per node and entry, indented by depth.
	require.Contains(t, actual, "RTree{")
	require.Contains(t, actual, "dir ")
	assert.Contains(t, actual, "\n  leaf ")
	assert.Contains(t, actual, "\n    ent ")
}

func TestStats_String(t *testing.T) {
	s := Stats{Dims: 2, Entries: 100, Nodes: 11, LeafNodes: 10, DirNodes: 1, Depth: 2}

	assert.Equal(t, "Stats{Dims:2,Entries:100,Nodes:11,LeafNodes:10,DirNodes:1,Depth:2}", s.String())
}
