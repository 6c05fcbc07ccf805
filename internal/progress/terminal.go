// Package progress animates long-running steps on interactive terminals.
package progress

import (
	"os"

	"golang.org/x/term"
)

// Spinner character sets from github.com/briandowns/spinner.
const (
	brailleSet = 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	asciiSet   = 9  // | / - \
)

// Terminal describes what the output stream can render.
type Terminal struct {
	Interactive bool
	Unicode     bool
}

// DetectTerminal inspects f. RELDOCS_ASCII=1 forces ASCII glyphs.
func DetectTerminal(f *os.File) Terminal {
	interactive := f != nil && term.IsTerminal(int(f.Fd()))
	return Terminal{
		Interactive: interactive,
		Unicode:     interactive && os.Getenv("RELDOCS_ASCII") != "1",
	}
}

func (t Terminal) charSet() int {
	if t.Unicode {
		return brailleSet
	}
	return asciiSet
}
