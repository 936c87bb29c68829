// Package ui provides cargo-go's three-level colored status reporting:
// info (green), warning (yellow), error (red), gated on whether the
// output stream is a terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter prints info/warning/error lines to stdout/stderr.
type Reporter struct {
	out io.Writer
	err io.Writer

	info *color.Color
	warn *color.Color
	fail *color.Color
}

// NewReporter returns a Reporter writing to out and errOut, with color
// enabled only when the corresponding stream is a terminal.
func NewReporter(out, errOut io.Writer) *Reporter {
	r := &Reporter{
		out:  out,
		err:  errOut,
		info: color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
	if !isTerminal(out) {
		r.info.DisableColor()
	}
	if !isTerminal(errOut) {
		r.warn.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

// NewDefaultReporter returns a Reporter over os.Stdout/os.Stderr.
func NewDefaultReporter() *Reporter {
	return NewReporter(os.Stdout, os.Stderr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info prints a green-tagged informational line to stdout.
func (r *Reporter) Info(format string, args ...any) {
	tag := r.info.Sprint("info:")
	fmt.Fprintf(r.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// Warning prints a yellow-tagged warning line to stderr.
func (r *Reporter) Warning(format string, args ...any) {
	tag := r.warn.Sprint("warning:")
	fmt.Fprintf(r.err, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// Error prints a red-tagged error line to stderr.
func (r *Reporter) Error(format string, args ...any) {
	tag := r.fail.Sprint("error:")
	fmt.Fprintf(r.err, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
