package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette colors the parts of a formatted error. The zero palette prints plain text.
type palette struct {
	label, message, category func(a ...any) string
	usage, fix, bullet       func(a ...any) string
}

var colored = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

func (p palette) paint(f func(a ...any) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// FormatError renders err for the terminal. Colors follow color.NoColor.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, colored)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, palette{})
}

func render(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		p.paint(p.label, "Error"), p.paint(p.category, err.Category.String()), p.paint(p.message, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.paint(p.usage, "Usage:"), p.paint(p.usage, err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.paint(p.fix, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.paint(p.bullet, "•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
