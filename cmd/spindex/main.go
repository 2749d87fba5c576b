// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command spindex is a workbench for the spindex index structures. It
// benchmarks the indexes against shared workloads and offers an
// interactive shell over an R*-tree.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	var err error
	switch args[0] {
	case "bench":
		err = runBench(args[1:])
	case "shell":
		err = runShell(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "spindex: unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "spindex: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `
spindex workbench

Usage:
  spindex bench -config <plan.yaml>   Run a benchmark plan against the indexes.
  spindex shell                       Start an interactive R*-tree session.

Run "spindex <command> -h" for the command's flags.
`)
}
