package lint

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flourish-assist/annotation"
)

const defaultGrace = 500 * time.Millisecond

type Config[H any] struct {
	// OnChangeLintingErrors fires whenever the error set changes.
	OnChangeLintingErrors func(errs annotation.ErrorSet, all, sorted []annotation.Annotation)

	// OnUpdateErrorNotice fires when the notice may be shown. Handle identifies
	// the editor.
	OnUpdateErrorNotice func(errs annotation.ErrorSet, handle H)

	Handle H

	// Grace is how long focus may take to come back after a completion session
	// closes before the deferred notice is delivered. Zero means 500ms.
	Grace time.Duration
}

// DeferredCheckMsg is delivered Grace after a completion session ends. Tag is
// the value passed to CompletionEnded.
type DeferredCheckMsg struct {
	Tag any
}

// Reconciler holds the lint state of one editor.
//
// It is not safe for concurrent use; all methods must run on the host's
// event loop.
type Reconciler[H any] struct {
	cfg Config[H]

	current      annotation.ErrorSet
	lastNotified annotation.ErrorSet
}

func New[H any](cfg Config[H]) *Reconciler[H] {
	if cfg.Grace <= 0 {
		cfg.Grace = defaultGrace
	}
	return &Reconciler[H]{cfg: cfg}
}

func (r *Reconciler[H]) Grace() time.Duration { return r.cfg.Grace }

func (r *Reconciler[H]) Current() annotation.ErrorSet { return annotation.Clone(r.current) }

func (r *Reconciler[H]) LastNotified() annotation.ErrorSet {
	return annotation.Clone(r.lastNotified)
}

// Pending reports whether the current set has not been delivered yet.
func (r *Reconciler[H]) Pending() bool {
	return !annotation.Equal(r.current, r.lastNotified)
}

// Update processes a fresh lint result. focused is the editor's focus state
// at the time of the update.
func (r *Reconciler[H]) Update(all []annotation.Annotation, focused bool) {
	errs := annotation.Errors(all)
	if annotation.Equal(errs, r.current) {
		return
	}
	r.current = errs

	if r.cfg.OnChangeLintingErrors != nil {
		r.cfg.OnChangeLintingErrors(annotation.Clone(errs), annotation.Clone(all), annotation.Sorted(all))
	}

	if focused && len(r.current) > 0 && len(r.lastNotified) == 0 {
		// Typing into fresh errors; wait for blur or a pointer press.
		return
	}
	r.UpdateErrorNotice()
}

// UpdateErrorNotice delivers the current set if it differs from the last one
// delivered. Calling it again without an intervening change is a no-op.
// Without an OnUpdateErrorNotice callback nothing is delivered, so the last
// notified set stays where it was.
func (r *Reconciler[H]) UpdateErrorNotice() {
	if r.cfg.OnUpdateErrorNotice == nil || !r.Pending() {
		return
	}
	r.lastNotified = annotation.Clone(r.current)
	r.cfg.OnUpdateErrorNotice(annotation.Clone(r.current), r.cfg.Handle)
}

// Blur delivers any deferred notice.
func (r *Reconciler[H]) Blur() { r.UpdateErrorNotice() }

// PointerDownOutside delivers any deferred notice after a pointer press that
// landed outside the editor and off the completion list.
func (r *Reconciler[H]) PointerDownOutside() { r.UpdateErrorNotice() }

// CompletionEnded schedules a one-shot DeferredCheckMsg carrying tag. Picking
// a completion with the pointer may blur and refocus the editor, so delivery
// waits out the grace window and is decided by DeferredCheck. The timer is
// never cancelled.
func (r *Reconciler[H]) CompletionEnded(tag any) tea.Cmd {
	return tea.Tick(r.cfg.Grace, func(time.Time) tea.Msg {
		return DeferredCheckMsg{Tag: tag}
	})
}

// DeferredCheck handles a fired DeferredCheckMsg. focused is the editor's
// focus state at fire time; a focused editor means the user is back to
// typing and the notice stays deferred.
func (r *Reconciler[H]) DeferredCheck(focused bool) {
	if focused {
		return
	}
	r.UpdateErrorNotice()
}
