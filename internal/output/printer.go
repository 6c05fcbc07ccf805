package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	stepMark    = color.New(color.FgCyan, color.Bold).SprintFunc()
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnMark    = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorMark   = color.New(color.FgRed, color.Bold).SprintFunc()
	debugText   = color.New(color.Faint).SprintFunc()
	pathText    = color.New(color.FgCyan).SprintFunc()
)

// Printer writes status lines for a command. Status goes to Out, warnings
// and errors to Err. Debug lines are shown only when Verbose is set.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

// NewPrinter returns a Printer writing to out and errOut.
func NewPrinter(out, errOut io.Writer, verbose bool) *Printer {
	return &Printer{Out: out, Err: errOut, Verbose: verbose}
}

// Step prints a progress line.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", stepMark("→"), fmt.Sprintf(format, args...))
}

// Success prints a completed action.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", successMark("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a warning to the error stream.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", warnMark("⚠"), fmt.Sprintf(format, args...))
}

// Error prints an error line to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", errorMark("✗"), fmt.Sprintf(format, args...))
}

// Debug prints a debug line when verbose output is enabled.
func (p *Printer) Debug(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.Err, "%s\n", debugText("[debug] "+fmt.Sprintf(format, args...)))
}

// List prints items as an indented bullet list.
func (p *Printer) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(p.Out, "    - %s\n", pathText(item))
	}
}
