// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
)

const (
	defaultExtent   = 1000.0
	defaultClusters = 10
)

// Rect is one dataset rectangle. Point datasets carry Min equal to Max
// in every dimension.
type Rect struct {
	Min, Max []float64
}

// A Generator builds a reproducible dataset of rectangles. Generators
// draw all randomness from the *rand.Rand they are handed, so the same
// source state always yields the same dataset.
type Generator interface {
	// Name identifies the distribution in reports and plan files.
	Name() string
	// Generate builds n rectangles.
	Generate(n int, r *rand.Rand) []Rect
}

// Uniform generates rectangles spread uniformly over a hypercube with
// side length Extent. Each side of a rectangle is uniform in
// [0, MaxSide); a MaxSide of zero generates points.
type Uniform struct {
	Dims    int
	Extent  float64 // side length of the world, defaults to 1000
	MaxSide float64
}

func (g Uniform) Name() string {
	return "uniform"
}

func (g Uniform) Generate(n int, r *rand.Rand) []Rect {
	checkGenDims(g.Dims)
	extent := g.Extent
	if extent <= 0 {
		extent = defaultExtent
	}
	rects := make([]Rect, n)
	for i := range rects {
		min := make([]float64, g.Dims)
		max := make([]float64, g.Dims)
		for d := range min {
			min[d] = r.Float64() * extent
			max[d] = min[d]
			if g.MaxSide > 0 {
				max[d] += r.Float64() * g.MaxSide
			}
		}
		rects[i] = Rect{Min: min, Max: max}
	}
	return rects
}

// Clustered generates points in Gaussian clusters. Cluster centers are
// uniform over a hypercube with side length Extent and each point
// scatters around a randomly chosen center with per-coordinate
// standard deviation Stddev.
type Clustered struct {
	Dims     int
	Clusters int     // number of cluster centers, defaults to 10
	Extent   float64 // side length of the world, defaults to 1000
	Stddev   float64 // spread within a cluster, defaults to Extent/100
}

func (g Clustered) Name() string {
	return "clustered"
}

func (g Clustered) Generate(n int, r *rand.Rand) []Rect {
	checkGenDims(g.Dims)
	extent := g.Extent
	if extent <= 0 {
		extent = defaultExtent
	}
	clusters := g.Clusters
	if clusters <= 0 {
		clusters = defaultClusters
	}
	stddev := g.Stddev
	if stddev <= 0 {
		stddev = extent / 100
	}
	centers := make([][]float64, clusters)
	for i := range centers {
		c := make([]float64, g.Dims)
		for d := range c {
			c[d] = r.Float64() * extent
		}
		centers[i] = c
	}
	rects := make([]Rect, n)
	for i := range rects {
		c := centers[r.Intn(clusters)]
		p := make([]float64, g.Dims)
		for d := range p {
			p[d] = c[d] + r.NormFloat64()*stddev
		}
		rects[i] = Rect{Min: p, Max: append([]float64(nil), p...)}
	}
	return rects
}

// GeoPoints generates two-dimensional longitude/latitude points with
// go-faker. The faker source is reseeded from r at the start of every
// call, so datasets reproduce like the other generators.
type GeoPoints struct{}

func (GeoPoints) Name() string {
	return "geo"
}

func (GeoPoints) Generate(n int, r *rand.Rand) []Rect {
	faker.SetRandomSource(rand.NewSource(r.Int63()))
	rects := make([]Rect, n)
	for i := range rects {
		p := []float64{float64(faker.Longitude()), float64(faker.Latitude())}
		rects[i] = Rect{Min: p, Max: append([]float64(nil), p...)}
	}
	return rects
}

func checkGenDims(dims int) {
	if dims < 1 {
		fmtPanic("generator dims must be at least 1 (got %d)", dims)
	}
}
