package textareahost

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	assist "github.com/iw2rmb/flourish-assist"
	"github.com/iw2rmb/flourish-assist/complete"
)

func (m *Model) CompletionActive() bool { return m.session.active }

// CompletionItems returns the visible candidates and the selected index.
func (m *Model) CompletionItems() ([]string, int) {
	return append([]string(nil), m.session.items...), m.session.selected
}

// ShowCompletions opens the completion list for the word before the cursor.
// Nothing opens when there are no candidates.
func (m *Model) ShowCompletions(opts complete.Options) {
	if m.cfg.Completer == nil {
		return
	}
	prefix := wordBefore(m.LineBeforeCursor())
	items := filterItems(m.cfg.Completer(m.Token(), prefix), prefix)
	if len(items) == 0 {
		m.closeSession()
		return
	}

	wasActive := m.session.active
	m.session = session{active: true, prefix: prefix, items: items}
	if opts.CompleteSingle && len(items) == 1 {
		m.accept()
		return
	}
	if !wasActive {
		m.pending = append(m.pending, m.Dispatch(&assist.Event{Kind: assist.EventCompletionStart}))
	}
}

func filterItems(candidates []string, prefix string) []string {
	lp := strings.ToLower(prefix)
	var out []string
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup || c == prefix {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(c), lp) {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// sessionKey handles a key while the list is open and reports whether the
// key was used by the list.
func (m *Model) sessionKey(msg tea.KeyMsg) bool {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Accept):
		m.accept()
		return true
	case key.Matches(msg, km.Dismiss):
		m.closeSession()
		return true
	case key.Matches(msg, km.Next):
		m.session.selected = (m.session.selected + 1) % len(m.session.items)
		return true
	case key.Matches(msg, km.Prev):
		n := len(m.session.items)
		m.session.selected = (m.session.selected - 1 + n) % n
		return true
	default:
		return false
	}
}

// refilter narrows the open list to the word now before the cursor.
func (m *Model) refilter() {
	prefix := wordBefore(m.LineBeforeCursor())
	items := filterItems(m.cfg.Completer(m.Token(), prefix), prefix)
	if len(items) == 0 {
		m.closeSession()
		return
	}
	m.session.prefix = prefix
	m.session.items = items
	if m.session.selected >= len(items) {
		m.session.selected = 0
	}
}

// accept replaces the typed prefix with the selected item and closes the list.
func (m *Model) accept() {
	s := m.session
	if !s.active || len(s.items) == 0 {
		return
	}
	item := s.items[s.selected]
	for range []rune(s.prefix) {
		m.ta, _ = m.ta.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.ta.InsertString(item)
	m.closeSession()
}

func (m *Model) closeSession() {
	if !m.session.active {
		return
	}
	m.session = session{}
	m.pending = append(m.pending, m.Dispatch(&assist.Event{Kind: assist.EventCompletionEnd}))
}
