// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"time"
)

// Series accumulates the latency of repeated operations. The zero
// value is an empty series ready to use.
type Series struct {
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// Observe folds one operation's latency into the series.
func (s *Series) Observe(d time.Duration) {
	if s.count == 0 || d < s.min {
		s.min = d
	}
	if s.count == 0 || d > s.max {
		s.max = d
	}
	s.count++
	s.total += d
}

// Count returns the number of observations.
func (s *Series) Count() int {
	return s.count
}

// Total returns the summed latency of all observations.
func (s *Series) Total() time.Duration {
	return s.total
}

// Min returns the smallest observed latency, or zero for an empty
// series.
func (s *Series) Min() time.Duration {
	return s.min
}

// Max returns the largest observed latency, or zero for an empty
// series.
func (s *Series) Max() time.Duration {
	return s.max
}

// Mean returns the average latency, or zero for an empty series.
func (s *Series) Mean() time.Duration {
	if s.count == 0 {
		return 0
	}
	return s.total / time.Duration(s.count)
}

// Throughput returns observations per second, or zero for an empty
// series or one whose total latency rounded to zero.
func (s *Series) Throughput() float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(s.count) / s.total.Seconds()
}

func (s *Series) String() string {
	return fmt.Sprintf("Series{Count:%d,Total:%s,Min:%s,Max:%s,Mean:%s}",
		s.count, s.total, s.Min(), s.Max(), s.Mean())
}
