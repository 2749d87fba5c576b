// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
)

var ansiSeq = regexp.MustCompile("\033\\[(?:[0-9]{1,3}(?:;[0-9]{1,3})*)?[mK]")

// viewLen measures a cell's printed width, ignoring any color escape
// sequences it carries.
func viewLen(s string) int {
	return utf8.RuneCountInString(ansiSeq.ReplaceAllString(s, ""))
}

func padded(s string, width int, align alignment) string {
	gap := width - viewLen(s)
	lpad := 0
	if align == alignCenter {
		lpad = gap / 2
	}
	return strings.Repeat(" ", lpad+1) + s + strings.Repeat(" ", gap-lpad+1)
}

// asTable renders rows under a header with a box-drawn frame. Cells
// may be colored; widths are computed on their visible text.
func asTable(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = viewLen(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := viewLen(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteByte('+')
		sep.WriteString(strings.Repeat("-", w+2))
	}
	sep.WriteByte('+')

	frame := color.New(color.FgHiBlack)
	line := frame.Sprintf("%s\n", sep.String())

	var sb strings.Builder
	sb.WriteString(line)
	for i, col := range columns {
		sb.WriteString(frame.Sprint("|"))
		sb.WriteString(padded(col, widths[i], alignCenter))
	}
	sb.WriteString(frame.Sprint("|"))
	sb.WriteByte('\n')
	sb.WriteString(line)
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(frame.Sprint("|"))
			sb.WriteString(padded(cell, widths[i], alignLeft))
		}
		sb.WriteString(frame.Sprint("|"))
		sb.WriteByte('\n')
	}
	sb.WriteString(line)
	return sb.String()
}

// asRows renders aligned "key : value" lines.
func asRows(keys, vals []string) string {
	width := 0
	for _, k := range keys {
		if w := viewLen(k); w > width {
			width = w
		}
	}
	clr := color.New(color.FgHiBlack)
	var sb strings.Builder
	for i := range keys {
		sb.WriteString(clr.Sprintf("%s:", padded(keys[i], width, alignLeft)))
		sb.WriteByte(' ')
		sb.WriteString(vals[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}
