// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qtree

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func formatPoint(p []float64) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatCoord(v))
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
	return fmt.Sprintf("Neighbor{%s,Value:%v,Dist:%s}", formatPoint(n.Point), n.Value, formatCoord(n.Dist))
}

// String returns a summary description of the tree.
func (t *Tree[V]) String() string {
	return fmt.Sprintf("QTree{Center:%s,Radius:%s,Size:%d}", formatPoint(t.Center()), formatCoord(t.Radius()), t.size)
}

// StringTree renders the full structure of the tree, one line per node
// and entry, each node marked with the quadrant index it fills in its
// parent. Intended for debugging and tests; the output grows linearly
// with the size of the tree.
func (t *Tree[V]) StringTree() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteByte('\n')
	if t.root != nil {
		stringNode(&sb, t.root, "node", 0)
	}
	return sb.String()
}

func stringNode[V any](sb *strings.Builder, n *node[V], side string, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s %s r=%s n=%d\n", indent, side, formatPoint(n.center), formatCoord(n.radius), n.count)
	if n.children == nil {
		for i := range n.entries {
			fmt.Fprintf(sb, "%s  ent %s %v\n", indent, formatPoint(n.entries[i].point), n.entries[i].value)
		}
		return
	}
	for q, c := range n.children {
		if c != nil {
			stringNode(sb, c, "q"+strconv.Itoa(q), depth+1)
		}
	}
}

// String renders the stats in field order.
func (s Stats) String() string {
	return fmt.Sprintf("Stats{Dims:%d,Entries:%d,Nodes:%d,LeafNodes:%d,InternalNodes:%d,Depth:%d}",
		s.Dims, s.Entries, s.Nodes, s.LeafNodes, s.InternalNodes, s.Depth)
}
