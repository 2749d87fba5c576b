// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the box as its lower corner followed by its upper
// corner, for example "[0,0,2,3]" for the unit-ish box from (0,0) to
// (2,3). Coordinates print with up to eight significant digits.
func (b *Box) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range b.Lower {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatCoord(v))
	}
	for _, v := range b.Upper {
		sb.WriteByte(',')
		sb.WriteString(formatCoord(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

// String renders the entry as its box and value.
func (e Entry[V]) String() string {
	return fmt.Sprintf("Entry{%s,Value:%v}", &e.Box, e.Value)
}

// String renders the neighbor as its box, value and distance.
func (n Neighbor[V]) String() string {
	return fmt.Sprintf("Neighbor{%s,Value:%v,Dist:%s}", &n.Box, n.Value, formatCoord(n.Dist))
}

// String returns a summary description of the tree.
func (t *RTree[V]) String() string {
	b := t.root.bounds
	return fmt.Sprintf("RTree{Bounds:%s,Size:%d,Depth:%d,Nodes:%d}", &b, t.size, t.height, t.nodes)
}

// StringTree renders the full structure of the tree, one line per node
// and entry, each indented by its depth. Intended for debugging and
// tests; the output grows linearly with the size of the tree.
func (t *RTree[V]) StringTree() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteByte('\n')
	stringNode(&sb, t.root, 0)
	return sb.String()
}

func stringNode[V any](sb *strings.Builder, n *node[V], depth int) {
	indent := strings.Repeat("  ", depth)
	kind := "dir"
	if n.leaf {
		kind = "leaf"
	}
	fmt.Fprintf(sb, "%s%s %s n=%d\n", indent, kind, &n.bounds, len(n.items))
	for i := range n.items {
		if n.leaf {
			fmt.Fprintf(sb, "%s  ent %s %v\n", indent, &n.items[i].bounds, n.items[i].value)
		} else {
			stringNode(sb, n.items[i].child, depth+1)
		}
	}
}

// String renders the stats in field order.
func (s Stats) String() string {
	return fmt.Sprintf("Stats{Dims:%d,Entries:%d,Nodes:%d,LeafNodes:%d,DirNodes:%d,Depth:%d}",
		s.Dims, s.Entries, s.Nodes, s.LeafNodes, s.DirNodes, s.Depth)
}
