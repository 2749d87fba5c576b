// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package bench runs the spindex index structures, and external indexes
// wrapped to match them, against shared workloads so their behavior and
// latency can be compared like for like.
//
// Every index under test is wrapped in a Candidate, a deliberately small
// surface of the operations all of the spindex trees share. A Runner
// executes a Plan (a generated dataset plus an operation mix) against
// each candidate in turn and reports per-phase latency series.
package bench

import (
	"github.com/gogama/spindex/kdtree"
	"github.com/gogama/spindex/qtree"
	"github.com/gogama/spindex/rstar"
)

// Candidate is an index structure under benchmark. Implementations wrap
// a concrete index behind the operation surface the spindex trees have
// in common: insert, remove, window query, and k-nearest-neighbor
// search. Query and NearestNeighbors return only the number of results
// found, so candidates with different entry types can still be compared.
//
// Point-based candidates index the min corner of each rectangle and are
// meaningful only for workloads whose rectangles are points (min equal
// to max for every entry).
type Candidate interface {
	// Name identifies the candidate in reports.
	Name() string
	// Insert adds a rectangle with an associated value.
	Insert(min, max []float64, value int)
	// Remove deletes one entry matching the rectangle, reporting
	// whether an entry was found.
	Remove(min, max []float64) bool
	// Query counts the entries intersecting the window.
	Query(min, max []float64) int
	// NearestNeighbors counts the neighbors found for a k-NN search
	// centered on the given point, at most k.
	NearestNeighbors(k int, center []float64) int
	// Size returns the number of entries currently indexed.
	Size() int
}

// RStarCandidate wraps an rstar.RTree. The query and k-NN iterators are
// retained and reset between calls so repeated operations do not
// allocate.
type RStarCandidate struct {
	tree *rstar.RTree[int]
	it   *rstar.Iterator[int]
	nn   *rstar.KNNIterator[int]
}

// NewRStarCandidate creates a candidate backed by an empty R*-tree
// indexing boxes with dims dimensions.
func NewRStarCandidate(dims int) *RStarCandidate {
	return &RStarCandidate{tree: rstar.New[int](dims)}
}

func (c *RStarCandidate) Name() string {
	return "rstar"
}

func (c *RStarCandidate) Insert(min, max []float64, value int) {
	c.tree.Insert(rstar.NewBox(min, max), value)
}

func (c *RStarCandidate) Remove(min, max []float64) bool {
	_, ok := c.tree.Remove(rstar.NewBox(min, max))
	return ok
}

func (c *RStarCandidate) Query(min, max []float64) int {
	b := rstar.NewBox(min, max)
	if c.it == nil {
		c.it = c.tree.Query(b)
	} else {
		c.it.Reset(b)
	}
	n := 0
	for c.it.Next() {
		n++
	}
	return n
}

func (c *RStarCandidate) NearestNeighbors(k int, center []float64) int {
	if c.nn == nil {
		c.nn = c.tree.NearestNeighbors(k, center)
	} else {
		c.nn.Reset(k, center)
	}
	n := 0
	for c.nn.Next() {
		n++
	}
	return n
}

func (c *RStarCandidate) Size() int {
	return c.tree.Size()
}

// KDTreeCandidate wraps a kdtree.Tree. It indexes the min corner of
// each rectangle, so it is suited to point workloads only.
type KDTreeCandidate struct {
	tree *kdtree.Tree[int]
	it   *kdtree.Iterator[int]
}

// NewKDTreeCandidate creates a candidate backed by an empty k-d tree
// indexing points with dims dimensions.
func NewKDTreeCandidate(dims int) *KDTreeCandidate {
	return &KDTreeCandidate{tree: kdtree.New[int](dims)}
}

func (c *KDTreeCandidate) Name() string {
	return "kdtree"
}

func (c *KDTreeCandidate) Insert(min, _ []float64, value int) {
	c.tree.Insert(min, value)
}

func (c *KDTreeCandidate) Remove(min, _ []float64) bool {
	_, ok := c.tree.Remove(min)
	return ok
}

func (c *KDTreeCandidate) Query(min, max []float64) int {
	if c.it == nil {
		c.it = c.tree.Query(min, max)
	} else {
		c.it.Reset(min, max)
	}
	n := 0
	for c.it.Next() {
		n++
	}
	return n
}

func (c *KDTreeCandidate) NearestNeighbors(k int, center []float64) int {
	return len(c.tree.NearestNeighbors(k, center))
}

func (c *KDTreeCandidate) Size() int {
	return c.tree.Size()
}

// QTreeCandidate wraps a qtree.Tree with an automatic extent, so any
// dataset fits without knowing its bounds up front. Like
// KDTreeCandidate it indexes the min corner of each rectangle and is
// suited to point workloads only.
type QTreeCandidate struct {
	tree *qtree.Tree[int]
	it   *qtree.Iterator[int]
}

// NewQTreeCandidate creates a candidate backed by an empty auto-extent
// quadtree indexing points with dims dimensions.
func NewQTreeCandidate(dims int) *QTreeCandidate {
	return &QTreeCandidate{tree: qtree.NewAutoExtent[int](dims)}
}

func (c *QTreeCandidate) Name() string {
	return "qtree"
}

func (c *QTreeCandidate) Insert(min, _ []float64, value int) {
	c.tree.Insert(min, value)
}

func (c *QTreeCandidate) Remove(min, _ []float64) bool {
	_, ok := c.tree.Remove(min)
	return ok
}

func (c *QTreeCandidate) Query(min, max []float64) int {
	if c.it == nil {
		c.it = c.tree.Query(min, max)
	} else {
		c.it.Reset(min, max)
	}
	n := 0
	for c.it.Next() {
		n++
	}
	return n
}

func (c *QTreeCandidate) NearestNeighbors(k int, center []float64) int {
	return len(c.tree.NearestNeighbors(k, center))
}

func (c *QTreeCandidate) Size() int {
	return c.tree.Size()
}
