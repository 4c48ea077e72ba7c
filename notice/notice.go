// Package notice renders the lint error notice shown next to an editor.
package notice

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/flourish-assist/annotation"
)

const defaultMaxLines = 5

type Style struct {
	Box      lipgloss.Style
	Headline lipgloss.Style
	Location lipgloss.Style
	Message  lipgloss.Style
	More     lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1),
		Headline: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Message:  lipgloss.NewStyle(),
		More:     lipgloss.NewStyle().Faint(true),
	}
}

// Model holds the last delivered error set. It is a value type; setters
// return the updated copy.
type Model struct {
	style    Style
	width    int
	maxLines int
	errs     annotation.ErrorSet
}

func New(style Style) Model {
	return Model{style: style, maxLines: defaultMaxLines}
}

// Set replaces the displayed errors.
func (m Model) Set(errs annotation.ErrorSet) Model {
	m.errs = annotation.Clone(errs)
	return m
}

func (m Model) Errors() annotation.ErrorSet { return annotation.Clone(m.errs) }

func (m Model) Visible() bool { return len(m.errs) > 0 }

// SetWidth bounds each rendered line to width cells; zero disables
// truncation.
func (m Model) SetWidth(width int) Model {
	if width < 0 {
		width = 0
	}
	m.width = width
	return m
}

// SetMaxLines bounds the number of listed messages. Non-positive values fall
// back to the default.
func (m Model) SetMaxLines(n int) Model {
	if n <= 0 {
		n = defaultMaxLines
	}
	m.maxLines = n
	return m
}

func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	inner := m.width - m.style.Box.GetHorizontalFrameSize()

	lines := make([]string, 0, m.maxLines+2)
	lines = append(lines, m.style.Headline.Render(m.truncate(headline(len(m.errs)), inner)))
	for i, a := range m.errs {
		if i == m.maxLines {
			more := fmt.Sprintf("… %d more", len(m.errs)-m.maxLines)
			lines = append(lines, m.style.More.Render(m.truncate(more, inner)))
			break
		}
		lines = append(lines, m.renderLine(a, inner))
	}
	return m.style.Box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLine(a annotation.Annotation, width int) string {
	start := annotation.NormalizeRange(a.Range).Start
	loc := fmt.Sprintf("%d:%d ", start.Row+1, start.Col+1)
	msg := sanitize(a.Message)
	if width > 0 {
		locW := runewidth.StringWidth(loc)
		if locW >= width {
			return m.style.Location.Render(m.truncate(loc, width))
		}
		msg = m.truncate(msg, width-locW)
	}
	return m.style.Location.Render(loc) + m.style.Message.Render(msg)
}

func (m Model) truncate(s string, width int) string {
	if m.width <= 0 || width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func headline(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}
