package main

import (
	"fmt"
	"io"
)

// progressDots prints one dot per 2.5% of completed games, 40 in total
type progressDots struct {
	out     io.Writer
	printed int
}

func newProgressDots(out io.Writer) *progressDots {
	return &progressDots{out: out}
}

// Update is called with the number of completed games; callers serialise calls
func (p *progressDots) Update(completed, total int) {
	if total <= 0 {
		return
	}
	want := completed * 40 / total
	for p.printed < want {
		fmt.Fprint(p.out, ".")
		p.printed++
	}
}

// Finish ends the progress line
func (p *progressDots) Finish() {
	if p.printed > 0 {
		fmt.Fprintln(p.out)
	}
}
