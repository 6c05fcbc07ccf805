// Package output prints reldocs progress to the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 80

// GetTerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// PrintDocumentEnd writes a rule labelled "reldocs" after an echoed document,
// so a dry run's output shows where the document stops.
func PrintDocumentEnd(out io.Writer) {
	const label = " reldocs "
	side := max((GetTerminalWidth()-len(label))/2, 3)
	rule := strings.Repeat("─", side)
	faint := color.New(color.FgMagenta, color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", faint(rule+label+rule))
}
