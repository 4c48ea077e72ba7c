package assist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flourish-assist/annotation"
	"github.com/iw2rmb/flourish-assist/complete"
)

type fakeEditor struct {
	Hub

	id      string
	opts    map[string]any
	options map[string]any

	focused bool
	token   complete.TokenContext
	line    string
	session bool

	inView   bool
	scrolled int
	shows    []complete.Options

	hit Hit
}

func newFakeEditor(target string, opts map[string]any) *fakeEditor {
	return &fakeEditor{id: target, opts: opts, options: map[string]any{}, inView: true}
}

func (f *fakeEditor) ID() string                         { return f.id }
func (f *fakeEditor) Focused() bool                      { return f.focused }
func (f *fakeEditor) Token() complete.TokenContext       { return f.token }
func (f *fakeEditor) LineBeforeCursor() string           { return f.line }
func (f *fakeEditor) CompletionActive() bool             { return f.session }
func (f *fakeEditor) ShowCompletions(o complete.Options) { f.shows = append(f.shows, o) }
func (f *fakeEditor) SetOption(name string, v any)       { f.options[name] = v }
func (f *fakeEditor) Option(name string) any             { return f.options[name] }
func (f *fakeEditor) InView() bool                       { return f.inView }
func (f *fakeEditor) ScrollIntoView()                    { f.scrolled++; f.inView = true }
func (f *fakeEditor) HitTest(int, int) Hit               { return f.hit }

func (f *fakeEditor) focus() tea.Cmd {
	f.focused = true
	return f.Dispatch(&Event{Kind: EventFocus})
}

func (f *fakeEditor) blur() tea.Cmd {
	f.focused = false
	return f.Dispatch(&Event{Kind: EventBlur})
}

func (f *fakeEditor) key(msg tea.KeyMsg) (consumed bool) {
	down := &Event{Kind: EventKeyDown, Key: msg}
	f.Dispatch(down)
	if !down.Consumed {
		f.Dispatch(&Event{Kind: EventKeyUp, Key: msg})
	}
	return down.Consumed
}

func (f *fakeEditor) lint(all ...annotation.Annotation) tea.Cmd {
	return f.Dispatch(&Event{Kind: EventLint, Annotations: all})
}

type fakeFactory struct {
	editors map[string]*fakeEditor
}

func (ff *fakeFactory) create(target string, opts map[string]any) Editor {
	if ff.editors == nil {
		ff.editors = map[string]*fakeEditor{}
	}
	ed := newFakeEditor(target, opts)
	ff.editors[target] = ed
	return ed
}
