package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/coregx/vimregex/meta"
)

// Styles holds the lipgloss styles for output formatting.
type Styles struct {
	Span  lipgloss.Style
	Group lipgloss.Style
	Match lipgloss.Style
}

// NewStyles creates the color styles, rendering for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return Styles{
		Span:  r.NewStyle().Foreground(lipgloss.Color("2")),            // green
		Group: r.NewStyle().Foreground(lipgloss.Color("6")),            // cyan
		Match: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true), // bold red
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Span:  lipgloss.NewStyle(),
		Group: lipgloss.NewStyle(),
		Match: lipgloss.NewStyle(),
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func stylesFor(mode ColorMode, w io.Writer) Styles {
	switch mode {
	case ColorAlways:
		return NewStyles(w)
	case ColorAuto:
		if isTerminal(w) {
			return NewStyles(w)
		}
	}
	return NoStyles()
}

// printMatch writes one match and its groups:
//
//	4:7 "foo"
//	  \1 4:5 "f"
//
// Groups that did not participate are omitted.
func printMatch(w io.Writer, s Styles, m *meta.Match) {
	fmt.Fprintf(w, "%s %s\n",
		s.Span.Render(fmt.Sprintf("%d:%d", m.Start(), m.End())),
		s.Match.Render(fmt.Sprintf("%q", m.Text())))
	for i := 1; i < m.NumGroups(); i++ {
		g, ok := m.Group(i)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s %d:%d %q\n", s.Group.Render(fmt.Sprintf("\\%d", i)), g.Start, g.End, g.Text)
	}
}
