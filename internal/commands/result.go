package commands

import (
	"fmt"
	"io"
	"strings"
)

// Result is the output of a command execution: lines for the user and
// diagnostics for the error channel. The caller decides where they go.
type Result struct {
	Lines       []string
	Diagnostics []string
}

// Printf appends a formatted output line.
func (r *Result) Printf(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Println appends output lines verbatim.
func (r *Result) Println(lines ...string) {
	r.Lines = append(r.Lines, lines...)
}

// Errorf appends a formatted diagnostic line.
func (r *Result) Errorf(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf(format, args...))
}

// String returns the output lines joined by newlines, without a trailing newline.
func (r *Result) String() string {
	return strings.Join(r.Lines, "\n")
}

// WriteTo writes output lines to out and diagnostics to errOut, one per line.
func (r *Result) WriteTo(out, errOut io.Writer) error {
	for _, line := range r.Lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	for _, line := range r.Diagnostics {
		if _, err := fmt.Fprintln(errOut, line); err != nil {
			return err
		}
	}
	return nil
}
