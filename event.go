package assist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flourish-assist/annotation"
)

type EventKind uint8

const (
	EventFocus EventKind = iota
	EventBlur
	EventKeyDown
	EventKeyUp
	EventLint
	EventCompletionStart
	EventCompletionEnd
	EventPointerDown
)

func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventLint:
		return "lint-update"
	case EventCompletionStart:
		return "completion-session-start"
	case EventCompletionEnd:
		return "completion-session-end"
	case EventPointerDown:
		return "pointer-down"
	default:
		return "unknown"
	}
}

// Event is a single editor event.
type Event struct {
	Kind EventKind

	// Key is set for EventKeyDown and EventKeyUp.
	Key tea.KeyMsg

	// Annotations is the full lint result for EventLint.
	Annotations []annotation.Annotation

	// X and Y are host-space cell coordinates for EventPointerDown.
	X, Y int

	// Consumed is set by a KeyDown handler to suppress the editor's default
	// action for the key.
	Consumed bool
}

type Handler func(ev *Event) tea.Cmd

type subscription struct {
	id int
	h  Handler
}

// Hub is a subscription table editors can embed to implement Subscribe.
// The zero value is ready to use.
type Hub struct {
	nextID int
	subs   map[EventKind][]subscription
}

// Subscribe registers h for kind. The returned disposer removes it; calling
// it more than once is a no-op.
func (hb *Hub) Subscribe(kind EventKind, h Handler) (dispose func()) {
	if h == nil {
		return func() {}
	}
	if hb.subs == nil {
		hb.subs = make(map[EventKind][]subscription)
	}
	hb.nextID++
	id := hb.nextID
	hb.subs[kind] = append(hb.subs[kind], subscription{id: id, h: h})

	return func() {
		subs := hb.subs[kind]
		for i, s := range subs {
			if s.id == id {
				hb.subs[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of handlers registered for kind.
func (hb *Hub) Len(kind EventKind) int { return len(hb.subs[kind]) }

// Dispatch runs the handlers for ev.Kind in registration order and batches
// their commands. Handlers added or removed during dispatch take effect on
// the next event.
func (hb *Hub) Dispatch(ev *Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	subs := append([]subscription(nil), hb.subs[ev.Kind]...)
	var cmds []tea.Cmd
	for _, s := range subs {
		if cmd := s.h(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
