// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kdtree

import (
	"fmt"
	"strconv"
	"strings"
)

func formatPoint(p []float64) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', 8, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}

// String renders the entry as its point and value.
func (e Entry[V]) String() string {
	return fmt.Sprintf("Entry{%s,Value:%v}", formatPoint(e.Point), e.Value)
}

// String renders the neighbor as its point, value and distance.
func (n Neighbor[V]) String() string {
	return fmt.Sprintf("Neighbor{%s,Value:%v,Dist:%s}", formatPoint(n.Point), n.Value, strconv.FormatFloat(n.Dist, 'g', 8, 64))
}

// String returns a summary description of the tree.
func (t *Tree[V]) String() string {
	return fmt.Sprintf("KDTree{Dims:%d,Size:%d}", t.dims, t.size)
}

// StringTree renders the full structure of the tree, one line per
// node, each indented by its depth and marked with the side it hangs
// off its parent. Intended for debugging and tests; the output grows
// linearly with the size of the tree.
func (t *Tree[V]) StringTree() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteByte('\n')
	stringNode(&sb, t.root, "node", 0)
	return sb.String()
}

func stringNode[V any](sb *strings.Builder, n *node[V], side string, depth int) {
	if n == nil {
		return
	}
	fmt.Fprintf(sb, "%s%s %s %v\n", strings.Repeat("  ", depth), side, formatPoint(n.point), n.value)
	stringNode(sb, n.left, "l", depth+1)
	stringNode(sb, n.right, "r", depth+1)
}

// String renders the stats in field order.
func (s Stats) String() string {
	return fmt.Sprintf("Stats{Dims:%d,Entries:%d,Depth:%d}", s.Dims, s.Entries, s.Depth)
}
