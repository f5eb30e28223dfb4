// Package ui provides user interface utilities for devc-publish, including
// colored output functions that respect NO_COLOR environment variable and TTY detection.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes colored messages to an output and an error stream.
// Commands bind it to their cobra writers so tests can capture both.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer for the given streams. Nil streams fall back
// to os.Stdout and os.Stderr.
func NewPrinter(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{Out: out, Err: errOut}
}

// Success prints a green-colored line to the output stream.
func (p *Printer) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.Out, format+"\n", args...)
}

// Info prints an uncolored line to the output stream.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Warning prints a yellow-colored line to the error stream.
func (p *Printer) Warning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.Err, format+"\n", args...)
}

// Error prints a red-colored line to the error stream.
func (p *Printer) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(p.Err, format+"\n", args...)
}

// List prints each item as a " - item" bullet. toErr selects the error stream.
func (p *Printer) List(items []string, toErr bool) {
	w := p.Out
	if toErr {
		w = p.Err
	}
	for _, item := range items {
		fmt.Fprintf(w, " - %s\n", item)
	}
}
