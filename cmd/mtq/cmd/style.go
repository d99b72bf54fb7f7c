package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gonum.org/v1/gonum/spatial/r3"
)

// palette decorates report text. Output that is not a terminal stays plain.
type palette struct {
	title func(...string) string
	label func(...string) string
	value func(...string) string
	warn  func(...string) string
	bad   func(...string) string
}

func plain(s ...string) string {
	out := ""
	for i, p := range s {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

func newPalette(w io.Writer) palette {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return palette{title: plain, label: plain, value: plain, warn: plain, bad: plain}
	}
	return palette{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Render,
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Render,
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")).Render,
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Render,
		bad:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")).Render,
	}
}

// row prints an aligned "label: value" line.
func (p palette) row(w io.Writer, label, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", p.label(fmt.Sprintf("%-12s", label+":")), p.value(fmt.Sprintf(format, args...)))
}

func vec(v r3.Vec) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}
