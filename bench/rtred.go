// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"strconv"
	"strings"

	"github.com/tidwall/rtred"
)

// rtredItem carries a stored rectangle for the rtred tree. The corner
// slices are private copies: the tree consults Rect for as long as the
// item stays indexed, after the caller's slices may have been reused.
type rtredItem struct {
	min, max []float64
	value    int
}

func (it *rtredItem) Rect(_ interface{}) (min, max []float64) {
	return it.min, it.max
}

// RTredCandidate wraps github.com/tidwall/rtred, the external baseline
// the spindex trees are measured against.
//
// rtred removes entries by item identity rather than by rectangle, so
// the adapter retains every inserted item in a map keyed by its
// rectangle and hands the retained item back to the tree on removal.
// Entries with equal rectangles stack in insertion order and are
// removed newest first.
type RTredCandidate struct {
	tree  *rtred.RTree
	items map[string][]*rtredItem
	probe rtredItem
}

// NewRTredCandidate creates a candidate backed by an empty rtred tree.
// rtred sizes itself per rectangle, so no dimension count is needed up
// front.
func NewRTredCandidate() *RTredCandidate {
	return &RTredCandidate{
		tree:  rtred.New(nil),
		items: make(map[string][]*rtredItem),
	}
}

func (c *RTredCandidate) Name() string {
	return "rtred"
}

func (c *RTredCandidate) Insert(min, max []float64, value int) {
	it := &rtredItem{
		min:   append([]float64(nil), min...),
		max:   append([]float64(nil), max...),
		value: value,
	}
	c.tree.Insert(it)
	key := rectKey(min, max)
	c.items[key] = append(c.items[key], it)
}

func (c *RTredCandidate) Remove(min, max []float64) bool {
	key := rectKey(min, max)
	stack := c.items[key]
	if len(stack) == 0 {
		return false
	}
	it := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(c.items, key)
	} else {
		c.items[key] = stack[:len(stack)-1]
	}
	c.tree.Remove(it)
	return true
}

func (c *RTredCandidate) Query(min, max []float64) int {
	c.probe.min, c.probe.max = min, max
	n := 0
	c.tree.Search(&c.probe, func(_ rtred.Item) bool {
		n++
		return true
	})
	return n
}

func (c *RTredCandidate) NearestNeighbors(k int, center []float64) int {
	if k <= 0 {
		return 0
	}
	c.probe.min, c.probe.max = center, center
	n := 0
	c.tree.KNN(&c.probe, true, func(_ rtred.Item, _ float64) bool {
		n++
		return n < k
	})
	return n
}

func (c *RTredCandidate) Size() int {
	return c.tree.Count()
}

// rectKey formats a rectangle into a map key. The 'b' format round
// trips float64 exactly, so distinct rectangles never collide.
func rectKey(min, max []float64) string {
	var sb strings.Builder
	for _, v := range min {
		sb.WriteString(strconv.FormatFloat(v, 'b', -1, 64))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, v := range max {
		sb.WriteString(strconv.FormatFloat(v, 'b', -1, 64))
		sb.WriteByte(',')
	}
	return sb.String()
}
