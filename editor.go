package assist

import "github.com/iw2rmb/flourish-assist/complete"

// LintOption is the editor option holding the LintOptions value.
const LintOption = "lint"

// Hit classifies a pointer position relative to an editor.
type Hit uint8

const (
	HitOutside Hit = iota
	HitEditor
	HitCompletionItem
)

// Editor is the set of capabilities assist needs from a code editor
// component. The component owns its buffer, tokenizer, and completion list.
type Editor interface {
	ID() string
	Focused() bool

	// Token describes the token at the cursor.
	Token() complete.TokenContext
	// LineBeforeCursor returns the current line up to the cursor.
	LineBeforeCursor() string

	CompletionActive() bool
	ShowCompletions(opts complete.Options)

	SetOption(name string, value any)
	Option(name string) any

	// InView reports whether the editor's input surface is visible in the
	// host's viewport; ScrollIntoView reveals it.
	InView() bool
	ScrollIntoView()

	// HitTest maps host-space cell coordinates to a Hit.
	HitTest(x, y int) Hit

	Subscribe(kind EventKind, h Handler) (dispose func())
}

// EditorFactory creates an editor bound to target. opts are the host's
// EditorOptions, passed through unchanged.
type EditorFactory func(target string, opts map[string]any) Editor
