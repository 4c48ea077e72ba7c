package assist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flourish-assist/annotation"
	"github.com/iw2rmb/flourish-assist/complete"
	"github.com/iw2rmb/flourish-assist/lint"
	"github.com/iw2rmb/flourish-assist/tabgate"
)

// Instance is one configured editor.
type Instance struct {
	Settings Settings
	Editor   Editor

	target string

	lint    *lint.Reconciler[*Instance]
	trigger complete.Trigger
	gate    *tabgate.Gate

	disposers []func()
	closed    bool
}

// Initialize creates an editor for target, configures its linter, wires the
// lint, completion, and tab handlers, and registers the instance in reg.
func Initialize(reg *Registry, target string, s Settings) *Instance {
	ed := reg.factory(target, s.EditorOptions)
	ed.SetOption(LintOption, LintOptions{Rules: MergeLintRules(DefaultLintRules(), s.LintRuleset)})

	inst := &Instance{
		Settings: s,
		Editor:   ed,
		target:   target,
	}
	inst.lint = lint.New(lint.Config[*Instance]{
		OnChangeLintingErrors: s.OnChangeLintingErrors,
		OnUpdateErrorNotice:   s.OnUpdateErrorNotice,
		Handle:                inst,
		Grace:                 s.NoticeGrace,
	})
	inst.trigger = complete.Trigger{Show: ed.ShowCompletions}
	inst.gate = tabgate.New(tabgate.Config{
		OnTabNext:     s.OnTabNext,
		OnTabPrevious: s.OnTabPrevious,
	})

	inst.wire()
	reg.add(inst)
	return inst
}

func (inst *Instance) wire() {
	ed := inst.Editor
	on := func(kind EventKind, h Handler) {
		inst.disposers = append(inst.disposers, ed.Subscribe(kind, h))
	}

	on(EventFocus, func(*Event) tea.Cmd {
		inst.gate.Focus()
		if !ed.InView() {
			ed.ScrollIntoView()
		}
		return nil
	})
	on(EventBlur, func(*Event) tea.Cmd {
		inst.gate.Blur()
		inst.lint.Blur()
		return nil
	})
	on(EventKeyDown, func(ev *Event) tea.Cmd {
		if inst.gate.KeyDown(ev.Key) {
			ev.Consumed = true
		}
		return nil
	})
	on(EventKeyUp, func(ev *Event) tea.Cmd {
		inst.trigger.KeyUp(complete.Input{
			Token:            ed.Token(),
			LineBeforeCursor: ed.LineBeforeCursor(),
			Key:              ev.Key.String(),
			SessionActive:    ed.CompletionActive(),
		})
		return nil
	})
	on(EventLint, func(ev *Event) tea.Cmd {
		inst.lint.Update(ev.Annotations, ed.Focused())
		return nil
	})
	on(EventCompletionEnd, func(*Event) tea.Cmd {
		return inst.lint.CompletionEnded(inst)
	})
	on(EventPointerDown, func(ev *Event) tea.Cmd {
		if ed.HitTest(ev.X, ev.Y) == HitOutside {
			inst.lint.PointerDownOutside()
		}
		return nil
	})
}

// Target returns the surface identifier the instance was created for.
func (inst *Instance) Target() string { return inst.target }

// Update handles messages addressed to this instance.
func (inst *Instance) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lint.DeferredCheckMsg:
		if owner, ok := msg.Tag.(*Instance); !ok || owner != inst {
			return nil
		}
		// The timer is never cancelled; a closed instance ignores it.
		if inst.closed {
			return nil
		}
		inst.lint.DeferredCheck(inst.Editor.Focused())
	}
	return nil
}

// LintErrors returns the current error set.
func (inst *Instance) LintErrors() annotation.ErrorSet { return inst.lint.Current() }

// NoticePending reports whether the current error set has not been
// delivered to OnUpdateErrorNotice yet.
func (inst *Instance) NoticePending() bool { return inst.lint.Pending() }

func (inst *Instance) TabState() tabgate.State { return inst.gate.State() }

// Closed reports whether Close has been called.
func (inst *Instance) Closed() bool { return inst.closed }

// Close unsubscribes every handler from the editor. It is idempotent.
func (inst *Instance) Close() {
	if inst.closed {
		return
	}
	inst.closed = true
	for i := len(inst.disposers) - 1; i >= 0; i-- {
		inst.disposers[i]()
	}
	inst.disposers = nil
}
