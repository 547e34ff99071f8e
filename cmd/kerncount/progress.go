package main

import (
	"fmt"
	"io"
)

// progressLine overwrites a single line with the number of occurrences
// seen so far. It is purely cosmetic and never touches the index.
type progressLine struct {
	w       io.Writer
	enabled bool
	n       int
}

func newProgress(w io.Writer, enabled bool) *progressLine {
	return &progressLine{w: w, enabled: enabled}
}

func (p *progressLine) Start() {
	if p.enabled {
		fmt.Fprintln(p.w)
	}
}

func (p *progressLine) Tick() {
	if p.enabled {
		fmt.Fprintf(p.w, "\rProgress: %d", p.n)
		p.n++
	}
}

func (p *progressLine) Done() {
	if p.enabled {
		fmt.Fprintln(p.w)
	}
}
