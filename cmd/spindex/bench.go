// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gogama/spindex/bench"
)

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	configPath := fs.String("config", "", "Benchmark plan file (YAML).")
	quiet := fs.Bool("quiet", false, "Suppress phase progress logs.")
	_ = fs.Parse(args)

	if *configPath == "" {
		return errors.New("bench needs a plan file: spindex bench -config plan.yaml")
	}
	v := viper.New()
	v.SetConfigFile(*configPath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	var plan bench.Plan
	if err := v.Unmarshal(&plan); err != nil {
		return err
	}

	log := zap.NewNop()
	if !*quiet {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
	}
	report, err := bench.NewRunner(log).Run(plan)
	_ = log.Sync()
	if err != nil {
		return err
	}
	fmt.Fprint(color.Output, renderReport(report))
	return nil
}

// renderReport draws one row per candidate and phase, highlighting the
// fastest mean latency of every phase.
func renderReport(report bench.Report) string {
	best := make(map[bench.Op]time.Duration)
	for _, row := range report {
		mean := row.Series.Mean()
		if cur, ok := best[row.Op]; !ok || mean < cur {
			best[row.Op] = mean
		}
	}
	green := color.New(color.FgGreen)
	columns := []string{"candidate", "op", "count", "total", "mean", "min", "max", "ops/s", "hits"}
	rows := make([][]string, len(report))
	for i, row := range report {
		mean := row.Series.Mean().String()
		if row.Series.Mean() == best[row.Op] {
			mean = green.Sprint(mean)
		}
		rows[i] = []string{
			row.Candidate,
			string(row.Op),
			strconv.Itoa(row.Series.Count()),
			row.Series.Total().String(),
			mean,
			row.Series.Min().String(),
			row.Series.Max().String(),
			strconv.FormatFloat(row.Series.Throughput(), 'f', 0, 64),
			strconv.Itoa(row.Hits),
		}
	}
	return asTable(columns, rows)
}
