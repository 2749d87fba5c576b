// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Op names one benchmark phase.
type Op string

const (
	OpInsert Op = "insert"
	OpQuery  Op = "query"
	OpKNN    Op = "knn"
	OpRemove Op = "remove"
)

// Plan describes one benchmark run. The mapstructure tags bind plan
// files loaded through viper.
type Plan struct {
	// Dims is the dimensionality of the dataset.
	Dims int `mapstructure:"dims"`
	// N is the number of rectangles to index.
	N int `mapstructure:"n"`
	// Seed fixes the dataset and the query workload. Equal plans
	// always measure identical work.
	Seed int64 `mapstructure:"seed"`
	// Distribution selects the dataset generator: "uniform" (the
	// default), "clustered", or "geo".
	Distribution string `mapstructure:"distribution"`
	// MaxSide is the largest rectangle side for the uniform
	// distribution. Zero generates points, which every candidate can
	// index.
	MaxSide float64 `mapstructure:"max_side"`
	// Clusters and Stddev shape the clustered distribution. Zero
	// values take the generator defaults.
	Clusters int     `mapstructure:"clusters"`
	Stddev   float64 `mapstructure:"stddev"`
	// Queries is the number of window queries and k-NN searches to
	// run. When zero it defaults to N.
	Queries int `mapstructure:"queries"`
	// K is the neighbor count per k-NN search, defaulting to 10.
	K int `mapstructure:"k"`
	// Candidates lists which indexes to run, by name. Empty runs all
	// of them.
	Candidates []string `mapstructure:"candidates"`
}

// Result is one row of a Report: one candidate's latency series for a
// single operation. Query rows carry the total window hits, k-NN rows
// the total neighbors found, and remove rows the number of removals
// that found an entry.
type Result struct {
	Candidate string
	Op        Op
	Series    Series
	Hits      int
}

// Report collects every Result row of one run, grouped by candidate in
// plan order with the phases in execution order.
type Report []Result

// Runner executes benchmark plans.
type Runner struct {
	log *zap.Logger
}

// NewRunner creates a Runner reporting phase progress to log. A nil
// log disables logging.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Run generates the plan's dataset and workload, executes them against
// every candidate, and returns the per-phase latency rows. Candidates
// see identical datasets, identical queries, and the same removal
// order.
func (r *Runner) Run(plan Plan) (Report, error) {
	if plan.Dims < 1 {
		return nil, fmtErr("plan dims must be at least 1 (got %d)", plan.Dims)
	}
	if plan.N < 1 {
		return nil, fmtErr("plan n must be at least 1 (got %d)", plan.N)
	}
	if plan.K < 0 {
		return nil, fmtErr("plan k must not be negative (got %d)", plan.K)
	}
	if plan.K == 0 {
		plan.K = 10
	}
	gen, err := plan.generator()
	if err != nil {
		return nil, err
	}
	cands, err := plan.build()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(plan.Seed))
	data := gen.Generate(plan.N, rng)
	work := makeWorkload(data, plan, rng)

	r.log.Info("running plan",
		zap.Int("dims", plan.Dims),
		zap.Int("n", plan.N),
		zap.Int64("seed", plan.Seed),
		zap.String("distribution", gen.Name()),
		zap.Int("queries", len(work.windows)),
		zap.Int("k", plan.K),
		zap.Int("candidates", len(cands)))

	report := make(Report, 0, 4*len(cands))
	queryHits := make(map[string]int, len(cands))
	for _, c := range cands {
		rows := r.runCandidate(c, data, work, plan.K)
		for _, row := range rows {
			if row.Op == OpQuery {
				queryHits[row.Candidate] = row.Hits
			}
		}
		report = append(report, rows...)
	}

	// Point candidates index only the min corners, so on a rectangle
	// dataset their window hits legitimately differ from the box
	// trees'. Surface any disagreement rather than failing.
	first, agree := -1, true
	for _, c := range cands {
		h := queryHits[c.Name()]
		if first < 0 {
			first = h
		} else if h != first {
			agree = false
		}
	}
	if !agree {
		fields := make([]zap.Field, 0, len(cands))
		for _, c := range cands {
			fields = append(fields, zap.Int(c.Name(), queryHits[c.Name()]))
		}
		r.log.Warn("window query hits disagree across candidates", fields...)
	}
	return report, nil
}

func (r *Runner) runCandidate(c Candidate, data []Rect, work workload, k int) []Result {
	log := r.log.With(zap.String("candidate", c.Name()))
	rows := make([]Result, 0, 4)

	var ins Series
	for i, rc := range data {
		start := time.Now()
		c.Insert(rc.Min, rc.Max, i)
		ins.Observe(time.Since(start))
	}
	log.Info("insert phase complete",
		zap.Int("entries", c.Size()),
		zap.Duration("total", ins.Total()),
		zap.Duration("mean", ins.Mean()))
	rows = append(rows, Result{Candidate: c.Name(), Op: OpInsert, Series: ins})

	var qry Series
	hits := 0
	for _, w := range work.windows {
		start := time.Now()
		hits += c.Query(w.Min, w.Max)
		qry.Observe(time.Since(start))
	}
	log.Info("query phase complete",
		zap.Int("windows", len(work.windows)),
		zap.Int("hits", hits),
		zap.Duration("total", qry.Total()),
		zap.Duration("mean", qry.Mean()))
	rows = append(rows, Result{Candidate: c.Name(), Op: OpQuery, Series: qry, Hits: hits})

	var knn Series
	neighbors := 0
	for _, center := range work.centers {
		start := time.Now()
		neighbors += c.NearestNeighbors(k, center)
		knn.Observe(time.Since(start))
	}
	log.Info("knn phase complete",
		zap.Int("searches", len(work.centers)),
		zap.Int("k", k),
		zap.Int("neighbors", neighbors),
		zap.Duration("total", knn.Total()),
		zap.Duration("mean", knn.Mean()))
	rows = append(rows, Result{Candidate: c.Name(), Op: OpKNN, Series: knn, Hits: neighbors})

	var rem Series
	found := 0
	for _, i := range work.removes {
		rc := data[i]
		start := time.Now()
		if c.Remove(rc.Min, rc.Max) {
			found++
		}
		rem.Observe(time.Since(start))
	}
	if found != len(work.removes) || c.Size() != 0 {
		log.Warn("remove phase left entries behind",
			zap.Int("missed", len(work.removes)-found),
			zap.Int("left", c.Size()))
	} else {
		log.Info("remove phase complete",
			zap.Int("removed", found),
			zap.Duration("total", rem.Total()),
			zap.Duration("mean", rem.Mean()))
	}
	rows = append(rows, Result{Candidate: c.Name(), Op: OpRemove, Series: rem, Hits: found})
	return rows
}

func (p Plan) generator() (Generator, error) {
	switch p.Distribution {
	case "", "uniform":
		return Uniform{Dims: p.Dims, MaxSide: p.MaxSide}, nil
	case "clustered":
		return Clustered{Dims: p.Dims, Clusters: p.Clusters, Stddev: p.Stddev}, nil
	case "geo":
		if p.Dims != 2 {
			return nil, fmtErr("geo distribution is two dimensional (plan has dims %d)", p.Dims)
		}
		return GeoPoints{}, nil
	}
	return nil, fmtErr("unknown distribution %q", p.Distribution)
}

func (p Plan) build() ([]Candidate, error) {
	names := p.Candidates
	if len(names) == 0 {
		names = []string{"rstar", "kdtree", "qtree", "rtred"}
	}
	cands := make([]Candidate, len(names))
	for i, name := range names {
		switch name {
		case "rstar":
			cands[i] = NewRStarCandidate(p.Dims)
		case "kdtree":
			cands[i] = NewKDTreeCandidate(p.Dims)
		case "qtree":
			cands[i] = NewQTreeCandidate(p.Dims)
		case "rtred":
			cands[i] = NewRTredCandidate()
		default:
			return nil, fmtErr("unknown candidate %q", name)
		}
	}
	return cands, nil
}

// workload is the query half of a plan: window queries and k-NN
// centers drawn over the dataset's bounds, plus a removal order. One
// workload serves every candidate.
type workload struct {
	windows []Rect
	centers [][]float64
	removes []int
}

func makeWorkload(data []Rect, plan Plan, rng *rand.Rand) workload {
	nq := plan.Queries
	if nq <= 0 {
		nq = plan.N
	}
	lo, hi := dataBounds(data, plan.Dims)
	w := workload{
		windows: make([]Rect, nq),
		centers: make([][]float64, nq),
	}
	for i := 0; i < nq; i++ {
		wmin := make([]float64, plan.Dims)
		wmax := make([]float64, plan.Dims)
		center := make([]float64, plan.Dims)
		for d := 0; d < plan.Dims; d++ {
			span := hi[d] - lo[d]
			// Window side is a twentieth of the data span, so a
			// window covers about 0.25% of a two dimensional world.
			wmin[d] = lo[d] + rng.Float64()*span
			wmax[d] = wmin[d] + span/20
			center[d] = lo[d] + rng.Float64()*span
		}
		w.windows[i] = Rect{Min: wmin, Max: wmax}
		w.centers[i] = center
	}
	w.removes = rng.Perm(len(data))
	return w
}

func dataBounds(data []Rect, dims int) (lo, hi []float64) {
	lo = make([]float64, dims)
	hi = make([]float64, dims)
	for d := 0; d < dims; d++ {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, rc := range data {
		for d := 0; d < dims; d++ {
			if rc.Min[d] < lo[d] {
				lo[d] = rc.Min[d]
			}
			if rc.Max[d] > hi[d] {
				hi[d] = rc.Max[d]
			}
		}
	}
	return lo, hi
}
