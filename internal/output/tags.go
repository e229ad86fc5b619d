package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Tag identifies the phase a status line belongs to.
type Tag string

// Tags for the sync run's status lines.
const (
	TagInfo    Tag = "INFO"
	TagStash   Tag = "STASH"
	TagPull    Tag = "PULL"
	TagCommit  Tag = "COMMIT"
	TagPush    Tag = "PUSH"
	TagSuccess Tag = "SUCCESS"
	TagError   Tag = "ERROR"
	TagWarn    Tag = "WARN"
)

// tagStyles maps each tag to its console color.
var tagStyles = map[Tag]lipgloss.Style{
	TagInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // blue
	TagStash:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
	TagPull:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
	TagCommit:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
	TagPush:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
	TagSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	TagError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // red
	TagWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

// colorEnabled reports whether w is a color-capable terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// renderTag formats a tag as "[TAG]", colored when the writer supports it.
func (s *Splog) renderTag(tag Tag) string {
	text := "[" + string(tag) + "]"
	if !s.colorize {
		return text
	}
	if style, ok := tagStyles[tag]; ok {
		return style.Render(text)
	}
	return text
}
