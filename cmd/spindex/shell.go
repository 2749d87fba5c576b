// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"

	"github.com/gogama/spindex/bench"
	"github.com/gogama/spindex/rstar"
)

const shellPrompt = "spindex> "

var (
	valueColor = color.New(color.FgHiCyan)
	errorColor = color.New(color.FgRed)
	noteColor  = color.New(color.FgHiBlack)
)

// shell is an interactive session over a two dimensional R*-tree with
// string values.
type shell struct {
	rl   *readline.Instance
	tree *rstar.RTree[string]
}

func runShell(args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	_ = fs.Parse(args)

	completer := readline.NewPrefixCompleter(
		readline.PcItem("insert"),
		readline.PcItem("remove"),
		readline.PcItem("get"),
		readline.PcItem("query"),
		readline.PcItem("knn"),
		readline.PcItem("seed"),
		readline.PcItem("stats"),
		readline.PcItem("tree"),
		readline.PcItem("clear"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &shell{rl: rl, tree: rstar.New[string](2)}
	s.printHelp()
	s.loop()
	return nil
}

func (s *shell) loop() {
	for {
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Fprintln(color.Output, "type 'exit' to quit")
			continue
		} else if err == io.EOF {
			return
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		var cmdErr error
		switch cmd {
		case "exit", "quit":
			return
		case "clear":
			readline.ClearScreen(color.Output)
		case "help":
			s.printHelp()
		case "insert":
			cmdErr = s.insert(args)
		case "remove":
			cmdErr = s.remove(args)
		case "get":
			cmdErr = s.get(args)
		case "query":
			cmdErr = s.query(args)
		case "knn":
			cmdErr = s.knn(args)
		case "seed":
			cmdErr = s.seed(args)
		case "stats":
			s.stats()
		case "tree":
			fmt.Fprintln(color.Output, s.tree.StringTree())
		default:
			fmt.Fprintf(color.Output, "unknown command %q (try 'help')\n", cmd)
		}
		if cmdErr != nil {
			fmt.Fprintln(color.Output, errorColor.Sprint(cmdErr.Error()))
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprint(color.Output, `
R*-tree session (two dimensions, string values)

Available commands:
  insert <x1> <y1> <x2> <y2> <value>  Insert a box with a value
  remove <x1> <y1> <x2> <y2>          Remove one entry with that box
  get    <x1> <y1> <x2> <y2>          Look up the value stored under a box
  query  <x1> <y1> <x2> <y2>          List the entries intersecting a window
  knn    <k> <x> <y>                  List the k entries nearest a point
  seed   [n]                          Insert n random labeled boxes (default 25)
  stats                               Show tree statistics
  tree                                Dump the tree structure
  clear                               Clear the screen
  exit                                End the session

`)
}

func (s *shell) insert(args []string) error {
	if len(args) < 5 {
		return errors.New("usage: insert <x1> <y1> <x2> <y2> <value>")
	}
	lower, upper, err := parseBox(args[:4])
	if err != nil {
		return err
	}
	value := strings.Join(args[4:], " ")
	s.tree.Insert(rstar.NewBox(lower, upper), value)
	fmt.Fprintf(color.Output, "inserted %s (tree now holds %d)\n", valueColor.Sprint(value), s.tree.Size())
	return nil
}

func (s *shell) remove(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: remove <x1> <y1> <x2> <y2>")
	}
	lower, upper, err := parseBox(args)
	if err != nil {
		return err
	}
	value, ok := s.tree.Remove(rstar.NewBox(lower, upper))
	if !ok {
		fmt.Fprintln(color.Output, "no entry with that box")
		return nil
	}
	fmt.Fprintf(color.Output, "removed %s (tree now holds %d)\n", valueColor.Sprint(value), s.tree.Size())
	return nil
}

func (s *shell) get(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: get <x1> <y1> <x2> <y2>")
	}
	lower, upper, err := parseBox(args)
	if err != nil {
		return err
	}
	value, ok := s.tree.Get(rstar.NewBox(lower, upper))
	if !ok {
		fmt.Fprintln(color.Output, "no entry with that box")
		return nil
	}
	fmt.Fprintln(color.Output, valueColor.Sprint(value))
	return nil
}

func (s *shell) query(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: query <x1> <y1> <x2> <y2>")
	}
	lower, upper, err := parseBox(args)
	if err != nil {
		return err
	}
	n := 0
	for it := s.tree.Query(rstar.NewBox(lower, upper)); it.Next(); {
		e := it.Entry()
		fmt.Fprintf(color.Output, "%s %s\n", &e.Box, valueColor.Sprint(e.Value))
		n++
	}
	fmt.Fprintln(color.Output, noteColor.Sprintf("%d entries", n))
	return nil
}

func (s *shell) knn(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: knn <k> <x> <y>")
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 0 {
		return fmt.Errorf("k must be a non-negative integer (got %q)", args[0])
	}
	center, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	n := 0
	for it := s.tree.NearestNeighbors(k, center); it.Next(); {
		nb := it.Neighbor()
		fmt.Fprintf(color.Output, "%s %s %s\n",
			&nb.Box, valueColor.Sprint(nb.Value), noteColor.Sprintf("dist=%g", nb.Dist))
		n++
	}
	fmt.Fprintln(color.Output, noteColor.Sprintf("%d neighbors", n))
	return nil
}

func (s *shell) seed(args []string) error {
	n := 25
	if len(args) > 1 {
		return errors.New("usage: seed [n]")
	}
	if len(args) == 1 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("seed count must be a positive integer (got %q)", args[0])
		}
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	data := bench.Uniform{Dims: 2, Extent: 100, MaxSide: 10}.Generate(n, rng)
	for _, rc := range data {
		s.tree.Insert(rstar.NewBox(rc.Min, rc.Max), faker.Word())
	}
	fmt.Fprintf(color.Output, "seeded %d random boxes (tree now holds %d)\n", n, s.tree.Size())
	return nil
}

func (s *shell) stats() {
	st := s.tree.Stats()
	b := s.tree.Bounds()
	keys := []string{"dims", "entries", "nodes", "leaf nodes", "dir nodes", "depth", "bounds"}
	vals := []string{
		strconv.Itoa(st.Dims),
		strconv.Itoa(st.Entries),
		strconv.Itoa(st.Nodes),
		strconv.Itoa(st.LeafNodes),
		strconv.Itoa(st.DirNodes),
		strconv.Itoa(st.Depth),
		b.String(),
	}
	fmt.Fprint(color.Output, asRows(keys, vals))
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = v
	}
	return out, nil
}

// parseBox reads four coordinates as two corners of a box, accepting
// the corners in either order.
func parseBox(args []string) (lower, upper []float64, err error) {
	coords, err := parseFloats(args)
	if err != nil {
		return nil, nil, err
	}
	lower = []float64{coords[0], coords[1]}
	upper = []float64{coords[2], coords[3]}
	for d := range lower {
		if lower[d] > upper[d] {
			lower[d], upper[d] = upper[d], lower[d]
		}
	}
	return lower, upper, nil
}
