package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated line while a long call runs. It is inert when
// the terminal is not interactive, so CI logs stay clean.
type Spinner struct {
	term   Terminal
	writer io.Writer
	s      *spinner.Spinner
}

// NewSpinner returns a Spinner for t writing to w (stderr when nil).
func NewSpinner(t Terminal, w io.Writer) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	return &Spinner{term: t, writer: w}
}

// Start begins animating with message. Calling Start twice restarts it.
func (sp *Spinner) Start(message string) {
	if !sp.term.Interactive {
		return
	}
	sp.Stop()
	sp.s = spinner.New(spinner.CharSets[sp.term.charSet()], 100*time.Millisecond, spinner.WithWriter(sp.writer))
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Stop halts the animation and clears the line.
func (sp *Spinner) Stop() {
	if sp.s == nil {
		return
	}
	sp.s.Stop()
	sp.s = nil
}
