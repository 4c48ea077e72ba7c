package textareahost

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assist "github.com/iw2rmb/flourish-assist"
	"github.com/iw2rmb/flourish-assist/annotation"
	"github.com/iw2rmb/flourish-assist/complete"
)

const (
	defaultWidth  = 60
	defaultHeight = 10
	defaultIndent = "  "
)

// Completer returns candidate words for the token under the cursor. prefix is
// the word being typed; the adapter filters by it as well.
type Completer func(tok complete.TokenContext, prefix string) []string

type Config struct {
	ID   string
	Mode string

	Width, Height   int
	Placeholder     string
	ShowLineNumbers bool

	// Indent is inserted for a tab key the tab gate did not consume.
	Indent string

	Completer Completer
	KeyMap    KeyMap
	Style     Style

	// Visible reports whether the editor is on screen; nil means always.
	Visible func() bool
	// Reveal scrolls the host so the editor is on screen.
	Reveal func()
}

type KeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
	Next    key.Binding
	Prev    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept:  key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "accept completion")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss completion")),
		Next:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next completion")),
		Prev:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev completion")),
	}
}

type Style struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25")),
	}
}

type session struct {
	active   bool
	prefix   string
	items    []string
	selected int
}

// Model is a textarea-backed assist.Editor. Unlike Bubble Tea sub-models it
// is used through a pointer: assist instances hold on to it.
type Model struct {
	assist.Hub

	cfg     Config
	ta      textarea.Model
	options map[string]any

	annotations []annotation.Annotation
	session     session
	originX     int
	originY     int

	// Commands produced by handlers outside HandleKey/Focus/Blur; drained
	// by the next call that returns a tea.Cmd.
	pending []tea.Cmd
}

var _ assist.Editor = (*Model)(nil)

func New(cfg Config) *Model {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if reflect.DeepEqual(cfg.Style, Style{}) {
		cfg.Style = DefaultStyle()
	}
	if cfg.Indent == "" {
		cfg.Indent = defaultIndent
	}

	ta := textarea.New()
	ta.CharLimit = 0
	ta.Placeholder = cfg.Placeholder
	ta.ShowLineNumbers = cfg.ShowLineNumbers
	ta.SetWidth(cfg.Width)
	ta.SetHeight(cfg.Height)

	return &Model{cfg: cfg, ta: ta, options: map[string]any{}}
}

// Factory returns an assist.EditorFactory building Models from base,
// overridden by the recognized editor options: "mode", "placeholder",
// "width", "height", and "lineNumbers". Every option is also stored as-is.
func Factory(base Config) assist.EditorFactory {
	return func(target string, opts map[string]any) assist.Editor {
		cfg := base
		cfg.ID = target
		if v, ok := opts["mode"].(string); ok {
			cfg.Mode = v
		}
		if v, ok := opts["placeholder"].(string); ok {
			cfg.Placeholder = v
		}
		if v, ok := intOption(opts["width"]); ok {
			cfg.Width = v
		}
		if v, ok := intOption(opts["height"]); ok {
			cfg.Height = v
		}
		if v, ok := opts["lineNumbers"].(bool); ok {
			cfg.ShowLineNumbers = v
		}
		m := New(cfg)
		for k, v := range opts {
			m.options[k] = v
		}
		return m
	}
}

func intOption(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func (m *Model) ID() string { return m.cfg.ID }

func (m *Model) Mode() string { return m.cfg.Mode }

func (m *Model) Focused() bool { return m.ta.Focused() }

func (m *Model) Value() string { return m.ta.Value() }

func (m *Model) SetValue(s string) { m.ta.SetValue(s) }

func (m *Model) SetOption(name string, v any) { m.options[name] = v }

func (m *Model) Option(name string) any { return m.options[name] }

func (m *Model) Annotations() []annotation.Annotation { return annotation.Clone(m.annotations) }

func (m *Model) InView() bool {
	if m.cfg.Visible == nil {
		return true
	}
	return m.cfg.Visible()
}

func (m *Model) ScrollIntoView() {
	if m.cfg.Reveal != nil {
		m.cfg.Reveal()
	}
}

// SetViewHooks replaces the Visible and Reveal hooks.
func (m *Model) SetViewHooks(visible func() bool, reveal func()) {
	m.cfg.Visible = visible
	m.cfg.Reveal = reveal
}

// SetOrigin places the editor's top-left cell in host coordinates.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m *Model) HitTest(x, y int) assist.Hit {
	x -= m.originX
	y -= m.originY
	w, h := m.cfg.Width, m.cfg.Height
	if x < 0 || y < 0 || x >= w {
		return assist.HitOutside
	}
	if y < h {
		return assist.HitEditor
	}
	if m.session.active && y < h+len(m.session.items) {
		return assist.HitCompletionItem
	}
	return assist.HitOutside
}

// cursor returns the logical row and rune column of the cursor.
func (m *Model) cursor() (row, col int) {
	li := m.ta.LineInfo()
	return m.ta.Line(), li.StartColumn + li.ColumnOffset
}

func (m *Model) LineBeforeCursor() string {
	row, col := m.cursor()
	lines := strings.Split(m.ta.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	runes := []rune(lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	return string(runes[:col])
}

// textBeforeCursor returns the whole document up to the cursor.
func (m *Model) textBeforeCursor() string {
	row, _ := m.cursor()
	lines := strings.Split(m.ta.Value(), "\n")
	if row > len(lines) {
		row = len(lines)
	}
	prev := strings.Join(lines[:row], "\n")
	if row == 0 {
		return m.LineBeforeCursor()
	}
	return prev + "\n" + m.LineBeforeCursor()
}

func (m *Model) Token() complete.TokenContext {
	before := m.textBeforeCursor()
	ctx := complete.TokenContext{
		InnerMode: innerMode(m.cfg.Mode, before),
		HostMode:  m.cfg.Mode,
		TagName:   openTagName(before),
	}
	tok, ok := tokenAt(lexerFor(m.cfg.Mode), m.ta.Value(), len([]rune(before)))
	if ok {
		ctx.Type = tokenType(tok.Type)
		ctx.Text = tok.Value
	}
	if lit := openLiteral(m.cfg.Mode, ctx.InnerMode, before); lit != complete.TokenOther {
		ctx.Type = lit
	}
	return ctx
}

// Focus focuses the textarea and dispatches the focus event.
func (m *Model) Focus() tea.Cmd {
	cmd := m.ta.Focus()
	return m.drain(cmd, m.Dispatch(&assist.Event{Kind: assist.EventFocus}))
}

// Blur closes any completion session, blurs the textarea, and dispatches the
// blur event.
func (m *Model) Blur() tea.Cmd {
	m.closeSession()
	m.ta.Blur()
	return m.drain(m.Dispatch(&assist.Event{Kind: assist.EventBlur}))
}

// SetAnnotations records a lint result and dispatches the lint event.
func (m *Model) SetAnnotations(all []annotation.Annotation) tea.Cmd {
	m.annotations = annotation.Clone(all)
	return m.drain(m.Dispatch(&assist.Event{Kind: assist.EventLint, Annotations: all}))
}

// MouseDown dispatches a pointer press at host coordinates.
func (m *Model) MouseDown(x, y int) tea.Cmd {
	cmd := m.Dispatch(&assist.Event{Kind: assist.EventPointerDown, X: x, Y: y})
	if m.session.active && m.HitTest(x, y) == assist.HitCompletionItem {
		m.session.selected = y - m.originY - m.cfg.Height
		m.accept()
	}
	return m.drain(cmd)
}

// HandleKey runs a key press through keydown handlers, then the completion
// list or the textarea, then keyup handlers. Only a consumed keydown skips
// the keyup.
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	down := &assist.Event{Kind: assist.EventKeyDown, Key: msg}
	cmds := []tea.Cmd{m.Dispatch(down)}
	if down.Consumed {
		return m.drain(cmds...)
	}

	if !(m.session.active && m.sessionKey(msg)) {
		if msg.Type == tea.KeyTab {
			m.ta.InsertString(m.cfg.Indent)
		} else {
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.session.active {
			m.refilter()
		}
	}

	cmds = append(cmds, m.Dispatch(&assist.Event{Kind: assist.EventKeyUp, Key: msg}))
	return m.drain(cmds...)
}

// Update forwards non-key messages, such as cursor blink, to the textarea.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		return m.HandleKey(k)
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m.drain(cmd)
}

func (m *Model) View() string {
	view := m.ta.View()
	if !m.session.active {
		return view
	}
	rows := make([]string, 0, len(m.session.items))
	for i, item := range m.session.items {
		st := m.cfg.Style.Item
		if i == m.session.selected {
			st = m.cfg.Style.Selected
		}
		rows = append(rows, st.Render(" "+item+" "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, strings.Join(rows, "\n"))
}

func (m *Model) drain(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}
