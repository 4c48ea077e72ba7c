package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	assist "github.com/iw2rmb/flourish-assist"
	"github.com/iw2rmb/flourish-assist/annotation"
	"github.com/iw2rmb/flourish-assist/notice"
	"github.com/iw2rmb/flourish-assist/textareahost"
)

const headerHeight = 2

type pane struct {
	title string
	mode  string
	inst  *assist.Instance
	ed    *textareahost.Model
	top   int
	text  string

	// Per pane, so a clean pane never hides another pane's errors.
	notice notice.Model
}

type model struct {
	reg    *assist.Registry
	panes  []*pane
	active int

	page   viewport.Model
	status string

	width, height int
}

func newModel(base assist.Settings) *model {
	m := &model{
		reg:  assist.NewRegistry(textareahost.Factory(textareahost.Config{Completer: completer})),
		page: viewport.New(0, 0),
	}

	specs := []struct{ title, target, mode, text string }{
		{title: "index.html", target: "html", mode: "htmlmixed", text: "<main>\n  <p>Hello</p>\n</main>"},
		{title: "site.css", target: "css", mode: "css", text: "main {\n  display: flex;\n}"},
	}
	for i, spec := range specs {
		p := &pane{title: spec.title, mode: spec.mode, notice: notice.New(notice.DefaultStyle())}
		s := base
		s.EditorOptions = mergeOptions(base.EditorOptions, map[string]any{"mode": spec.mode, "lineNumbers": true})
		s.OnTabNext = func() { m.focusPane(i + 1) }
		s.OnTabPrevious = func() { m.focusPane(i - 1) }
		s.OnChangeLintingErrors = func(errs annotation.ErrorSet, all, _ []annotation.Annotation) {
			log.Printf("%s: %d errors, %d annotations", spec.title, len(errs), len(all))
		}
		s.OnUpdateErrorNotice = func(errs annotation.ErrorSet, inst *assist.Instance) {
			p.notice = p.notice.Set(errs)
			m.status = fmt.Sprintf("%s: %d error(s)", inst.Target(), len(errs))
		}

		p.inst = assist.Initialize(m.reg, spec.target, s)
		p.ed = p.inst.Editor.(*textareahost.Model)
		p.ed.SetValue(spec.text)
		m.panes = append(m.panes, p)
	}
	m.bindViewportHooks()
	return m
}

func mergeOptions(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// bindViewportHooks gives each pane a visibility check and reveal action on
// the scrolling page.
func (m *model) bindViewportHooks() {
	for _, p := range m.panes {
		p.ed.SetViewHooks(
			func() bool { return p.top >= m.page.YOffset && p.top < m.page.YOffset+m.page.Height },
			func() { m.page.SetYOffset(p.top) },
		)
	}
}

func (m *model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.panes {
		p.text = p.ed.Value()
		cmds = append(cmds, p.ed.SetAnnotations(runLint(p.ed, p.mode, p.text)))
	}
	cmds = append(cmds, m.panes[0].ed.Focus())
	return tea.Batch(cmds...)
}

func (m *model) focusPane(i int) {
	if len(m.panes) == 0 {
		return
	}
	i = (i%len(m.panes) + len(m.panes)) % len(m.panes)
	m.active = i
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	prev := m.active

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.page.Width = msg.Width
		m.page.Height = msg.Height - headerHeight
		for _, p := range m.panes {
			p.notice = p.notice.SetWidth(msg.Width / 2)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		p := m.panes[m.active]
		cmds = append(cmds, p.ed.HandleKey(msg))
		cmds = append(cmds, m.relint(p))
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i, p := range m.panes {
				if p.ed.HitTest(msg.X, msg.Y) == assist.HitEditor {
					m.active = i
				}
				cmds = append(cmds, p.ed.MouseDown(msg.X, msg.Y))
			}
		} else {
			var cmd tea.Cmd
			m.page, cmd = m.page.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.BlurMsg:
		cmds = append(cmds, m.panes[m.active].ed.Blur())
	case tea.FocusMsg:
		cmds = append(cmds, m.panes[m.active].ed.Focus())
	default:
		cmds = append(cmds, m.reg.Update(msg))
		for _, p := range m.panes {
			cmds = append(cmds, p.ed.Update(msg))
		}
	}

	if m.active != prev {
		cmds = append(cmds, m.panes[prev].ed.Blur(), m.panes[m.active].ed.Focus())
	}
	m.layout()
	return m, tea.Batch(cmds...)
}

// relint runs the linter when the pane's text changed, like an editor's
// lint-on-change.
func (m *model) relint(p *pane) tea.Cmd {
	text := p.ed.Value()
	if text == p.text {
		return nil
	}
	p.text = text
	return p.ed.SetAnnotations(runLint(p.ed, p.mode, text))
}

func (m *model) layout() {
	y := 0
	var blocks []string
	for _, p := range m.panes {
		p.top = y
		p.ed.SetOrigin(0, headerHeight+y-m.page.YOffset+1)
		block := lipgloss.JoinVertical(lipgloss.Left, paneTitle(p, p == m.panes[m.active]), p.ed.View())
		blocks = append(blocks, block)
		y += lipgloss.Height(block)
	}
	m.page.SetContent(strings.Join(blocks, "\n"))
}

var (
	titleStyle       = lipgloss.NewStyle().Faint(true)
	activeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle      = lipgloss.NewStyle().Bold(true)
)

func paneTitle(p *pane, active bool) string {
	st := titleStyle
	if active {
		st = activeTitleStyle
	}
	return st.Render(fmt.Sprintf("── %s (%s)", p.title, p.mode))
}

func (m *model) View() string {
	header := headerStyle.Render("assist demo") + "  esc tab: next pane · ctrl+c: quit"
	if m.status != "" {
		header += "\n" + m.status
	}
	base := lipgloss.JoinVertical(lipgloss.Left, lipgloss.PlaceVertical(headerHeight, lipgloss.Top, header), m.page.View())
	n := m.panes[m.active].notice
	if !n.Visible() {
		return base
	}
	return overlay.Composite(n.View(), base, overlay.Right, overlay.Top, 0, headerHeight)
}
