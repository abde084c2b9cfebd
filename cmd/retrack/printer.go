package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/coregx/retrack/backtrack"
)

// printer renders matches with the usual grep coloring: magenta filenames,
// green line numbers, bold red match spans. Colors are active only when
// stdout is a terminal; termenv's profile detection also honors NO_COLOR.
type printer struct {
	w   io.Writer
	out *termenv.Output
}

func newPrinter(f *os.File) *printer {
	profile := termenv.Ascii
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		profile = termenv.EnvColorProfile()
	}
	return &printer{w: f, out: termenv.NewOutput(f, termenv.WithProfile(profile))}
}

func (p *printer) fileStart(name string) {
	fmt.Fprintf(p.w, "%s\n", p.out.String(name).Foreground(termenv.ANSIMagenta))
}

func (p *printer) fileEnd() {
	fmt.Fprintln(p.w)
}

func (p *printer) lineNum(n int) {
	fmt.Fprintf(p.w, "%s:", p.out.String(strconv.Itoa(n)).Foreground(termenv.ANSIGreen))
}

func (p *printer) match(line []byte, res *backtrack.Match) {
	start, end := res.Start(), res.End()
	fmt.Fprintf(p.w, "%s%s%s\n",
		line[:start],
		p.out.String(string(line[start:end+1])).Foreground(termenv.ANSIRed).Bold(),
		line[end+1:])
}

func (p *printer) replacement(s string) {
	fmt.Fprintf(p.w, "%s\n", p.out.String(s).Foreground(termenv.ANSIRed).Bold())
}
