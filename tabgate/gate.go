// Package tabgate lets Tab leave the editor after Escape.
//
// Normally Tab inserts indentation. Pressing Escape arms the gate so that the
// next Tab (or Shift+Tab) moves focus to the next (or previous) control
// instead. Focus changes disarm it.
package tabgate

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type State uint8

const (
	StateNormal State = iota
	StateEscapePending
)

func (s State) String() string {
	if s == StateEscapePending {
		return "escape-pending"
	}
	return "normal"
}

type KeyMap struct {
	Escape   key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "arm tab to leave editor")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("esc tab", "next control")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("esc shift+tab", "previous control")),
	}
}

type Config struct {
	KeyMap KeyMap

	OnTabNext     func()
	OnTabPrevious func()
}

// Gate is the per-editor escape/tab state machine.
type Gate struct {
	cfg   Config
	state State
}

func New(cfg Config) *Gate {
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	return &Gate{cfg: cfg}
}

func (g *Gate) State() State { return g.state }

func (g *Gate) KeyMap() KeyMap { return g.cfg.KeyMap }

// KeyDown feeds a key press to the gate. It reports whether the key was
// consumed, in which case the editor must not apply its default action.
func (g *Gate) KeyDown(msg tea.KeyMsg) (consumed bool) {
	km := g.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Escape):
		g.state = StateEscapePending
		return false
	case key.Matches(msg, km.ShiftTab):
		return g.consumeTab(g.cfg.OnTabPrevious)
	case key.Matches(msg, km.Tab):
		return g.consumeTab(g.cfg.OnTabNext)
	default:
		return false
	}
}

func (g *Gate) consumeTab(fn func()) bool {
	if g.state != StateEscapePending {
		return false
	}
	g.state = StateNormal
	if fn != nil {
		fn()
	}
	return true
}

// Focus resets the gate; regaining focus cancels a pending exit.
func (g *Gate) Focus() { g.state = StateNormal }

// Blur clears a pending exit so a later focus+tab indents normally.
func (g *Gate) Blur() { g.state = StateNormal }
