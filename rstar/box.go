// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

import "math"

// A Box is an axis-aligned minimum bounding box in an arbitrary number
// of dimensions. Lower holds the minimum coordinate of the box along
// each dimension and Upper holds the maximum. A point is a Box whose
// Lower and Upper coordinates coincide in every dimension.
//
// The number of dimensions of a Box is len(Lower), which must always
// equal len(Upper).
type Box struct {
	Lower []float64
	Upper []float64
}

// NewBox creates a Box from a pair of corner coordinate slices. The
// slices are copied, so the caller is free to reuse them. Panics if
// the slices have different lengths, are empty, or describe an
// inverted box (a lower coordinate greater than the corresponding
// upper coordinate).
func NewBox(lower, upper []float64) Box {
	if len(lower) != len(upper) {
		fmtPanic("corner dimensions differ (%d versus %d)", len(lower), len(upper))
	} else if len(lower) == 0 {
		textPanic("box must have at least one dimension")
	}
	for d := range lower {
		if lower[d] > upper[d] {
			fmtPanic("inverted box (lower %g > upper %g in dimension %d)", lower[d], upper[d], d)
		}
	}
	b := Box{
		Lower: make([]float64, len(lower)),
		Upper: make([]float64, len(upper)),
	}
	copy(b.Lower, lower)
	copy(b.Upper, upper)
	return b
}

// Point creates a degenerate Box containing exactly one point. The
// coordinate slice is copied. Panics if the slice is empty.
func Point(coords []float64) Box {
	return NewBox(coords, coords)
}

// EmptyBox returns the identity element for Expand in the given number
// of dimensions: a box whose lower coordinates are all +Inf and whose
// upper coordinates are all -Inf. Expanding an empty box to include
// another box yields that other box.
func EmptyBox(dims int) Box {
	b := Box{
		Lower: make([]float64, dims),
		Upper: make([]float64, dims),
	}
	for d := 0; d < dims; d++ {
		b.Lower[d] = math.Inf(1)
		b.Upper[d] = math.Inf(-1)
	}
	return b
}

// Dims returns the number of dimensions of the box.
func (b *Box) Dims() int {
	return len(b.Lower)
}

// Width returns the extent of the box along dimension d.
func (b *Box) Width(d int) float64 {
	return b.Upper[d] - b.Lower[d]
}

// center returns the midpoint of the box along dimension d.
func (b *Box) center(d int) float64 {
	return (b.Lower[d] + b.Upper[d]) / 2
}

// Area returns the volume enclosed by the box: the product of its
// extents along every dimension. A point has zero area.
func (b *Box) Area() float64 {
	a := 1.0
	for d := range b.Lower {
		a *= b.Upper[d] - b.Lower[d]
	}
	return a
}

// Margin returns the sum of the box's extents along every dimension.
// Margin is to perimeter what Area is to volume: a cheap proxy for
// how elongated the box is, used when choosing a split axis.
func (b *Box) Margin() float64 {
	m := 0.0
	for d := range b.Lower {
		m += b.Upper[d] - b.Lower[d]
	}
	return m
}

// Intersects reports whether the box and o share at least one point.
// Boxes that merely touch along a face, edge or corner intersect.
func (b *Box) Intersects(o *Box) bool {
	for d := range b.Lower {
		if b.Upper[d] < o.Lower[d] || b.Lower[d] > o.Upper[d] {
			return false
		}
	}
	return true
}

// Contains reports whether every point of o is also a point of b.
func (b *Box) Contains(o *Box) bool {
	for d := range b.Lower {
		if o.Lower[d] < b.Lower[d] || o.Upper[d] > b.Upper[d] {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether the point p lies within the box.
// Points on the boundary are contained.
func (b *Box) ContainsPoint(p []float64) bool {
	for d := range p {
		if p[d] < b.Lower[d] || p[d] > b.Upper[d] {
			return false
		}
	}
	return true
}

// Equal reports whether the box and o have identical coordinates in
// every dimension.
func (b *Box) Equal(o *Box) bool {
	if len(b.Lower) != len(o.Lower) {
		return false
	}
	for d := range b.Lower {
		if b.Lower[d] != o.Lower[d] || b.Upper[d] != o.Upper[d] {
			return false
		}
	}
	return true
}

// Expand grows the box by the minimum amount required to contain o.
func (b *Box) Expand(o *Box) {
	for d := range b.Lower {
		if o.Lower[d] < b.Lower[d] {
			b.Lower[d] = o.Lower[d]
		}
		if o.Upper[d] > b.Upper[d] {
			b.Upper[d] = o.Upper[d]
		}
	}
}

// clone returns a deep copy of the box with freshly allocated
// coordinate slices.
func (b *Box) clone() Box {
	c := Box{
		Lower: make([]float64, len(b.Lower)),
		Upper: make([]float64, len(b.Upper)),
	}
	copy(c.Lower, b.Lower)
	copy(c.Upper, b.Upper)
	return c
}

// extend is Expand returning whether the box actually grew. MBB
// maintenance walks stop climbing as soon as an ancestor is unchanged.
func (b *Box) extend(o *Box) bool {
	grew := false
	for d := range b.Lower {
		if o.Lower[d] < b.Lower[d] {
			b.Lower[d] = o.Lower[d]
			grew = true
		}
		if o.Upper[d] > b.Upper[d] {
			b.Upper[d] = o.Upper[d]
			grew = true
		}
	}
	return grew
}

// overlap returns the volume of the intersection of a and b, or zero
// if they do not intersect.
func overlap(a, b *Box) float64 {
	v := 1.0
	for d := range a.Lower {
		lo, hi := a.Lower[d], a.Upper[d]
		if b.Lower[d] > lo {
			lo = b.Lower[d]
		}
		if b.Upper[d] < hi {
			hi = b.Upper[d]
		}
		if hi <= lo {
			return 0
		}
		v *= hi - lo
	}
	return v
}

// enlargement returns the increase in area of b required to contain
// add. The result is zero when b already contains add.
func enlargement(b, add *Box) float64 {
	before := 1.0
	after := 1.0
	for d := range b.Lower {
		lo, hi := b.Lower[d], b.Upper[d]
		before *= hi - lo
		if add.Lower[d] < lo {
			lo = add.Lower[d]
		}
		if add.Upper[d] > hi {
			hi = add.Upper[d]
		}
		after *= hi - lo
	}
	return after - before
}

// deadSpace returns the area of the combined bounding box of a and b
// minus the areas of a and b themselves. The result can be negative
// when a and b overlap heavily.
func deadSpace(a, b *Box) float64 {
	u := 1.0
	for d := range a.Lower {
		lo, hi := a.Lower[d], a.Upper[d]
		if b.Lower[d] < lo {
			lo = b.Lower[d]
		}
		if b.Upper[d] > hi {
			hi = b.Upper[d]
		}
		u *= hi - lo
	}
	return u - a.Area() - b.Area()
}

// centerDistSq returns the squared Euclidean distance between the
// centers of a and b. Only orderings of center distances are ever
// needed, so the square root is never taken.
func centerDistSq(a, b *Box) float64 {
	s := 0.0
	for d := range a.Lower {
		diff := a.center(d) - b.center(d)
		s += diff * diff
	}
	return s
}

// EdgeDistance returns the Euclidean distance from the point p to the
// nearest point of the box b, or zero if p lies inside b. It is the
// distance metric used by the nearest neighbor queries.
func EdgeDistance(p []float64, b *Box) float64 {
	s := 0.0
	for d := range p {
		var diff float64
		if p[d] < b.Lower[d] {
			diff = b.Lower[d] - p[d]
		} else if p[d] > b.Upper[d] {
			diff = p[d] - b.Upper[d]
		}
		s += diff * diff
	}
	return math.Sqrt(s)
}

// farCornerDist returns the Euclidean distance from the point p to the
// corner of b farthest from p. Every point of b, and therefore every
// entry of a subtree bounded by b, lies within this distance of p.
func farCornerDist(p []float64, b *Box) float64 {
	s := 0.0
	for d := range p {
		lo := p[d] - b.Lower[d]
		hi := p[d] - b.Upper[d]
		lo *= lo
		hi *= hi
		if hi > lo {
			lo = hi
		}
		s += lo
	}
	return math.Sqrt(s)
}

// minMaxDist returns the MinMax distance from the point p to the box
// b: the smallest distance within which at least one entry of a
// subtree bounded by b is guaranteed to lie. Along each dimension in
// turn the nearer face of b is paired with the farther corner
// coordinates of every other dimension, and the minimum over all
// dimensions is taken.
func minMaxDist(p []float64, b *Box) float64 {
	// farSum accumulates the squared distance to the farther corner
	// in every dimension.
	farSum := 0.0
	far := make([]float64, len(p))
	near := make([]float64, len(p))
	for d := range p {
		lo := b.Lower[d]
		hi := b.Upper[d]
		mid := (lo + hi) / 2
		// Nearer face coordinate along d.
		if p[d] <= mid {
			near[d] = p[d] - lo
		} else {
			near[d] = p[d] - hi
		}
		// Farther face coordinate along d.
		if p[d] >= mid {
			far[d] = p[d] - lo
		} else {
			far[d] = p[d] - hi
		}
		far[d] *= far[d]
		near[d] *= near[d]
		farSum += far[d]
	}
	best := math.Inf(1)
	for d := range p {
		s := farSum - far[d] + near[d]
		if s < best {
			best = s
		}
	}
	return math.Sqrt(best)
}
