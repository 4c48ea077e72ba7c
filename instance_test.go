package assist

import (
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/flourish-assist/annotation"
	"github.com/iw2rmb/flourish-assist/complete"
	"github.com/iw2rmb/flourish-assist/lint"
	"github.com/iw2rmb/flourish-assist/tabgate"
)

func errAt(row int, msg string) annotation.Annotation {
	return annotation.Annotation{
		Severity: annotation.SeverityError,
		Message:  msg,
		Range:    annotation.Range{Start: annotation.Pos{Row: row}, End: annotation.Pos{Row: row, Col: 1}},
	}
}

type noticeLog struct {
	changes []annotation.ErrorSet
	notices []annotation.ErrorSet
	owners  []*Instance
}

func setup(t *testing.T, s Settings) (*Registry, *Instance, *fakeEditor, *noticeLog) {
	t.Helper()
	log := &noticeLog{}
	s.OnChangeLintingErrors = func(errs annotation.ErrorSet, _, _ []annotation.Annotation) {
		log.changes = append(log.changes, errs)
	}
	s.OnUpdateErrorNotice = func(errs annotation.ErrorSet, inst *Instance) {
		log.notices = append(log.notices, errs)
		log.owners = append(log.owners, inst)
	}
	ff := &fakeFactory{}
	reg := NewRegistry(ff.create)
	inst := Initialize(reg, "main", s)
	return reg, inst, ff.editors["main"], log
}

func TestInitialize_ForwardsEditorOptionsAndSetsLintOption(t *testing.T) {
	opts := map[string]any{"mode": "htmlmixed", "lineNumbers": true}
	_, inst, ed, _ := setup(t, Settings{
		EditorOptions: opts,
		LintRuleset:   map[string]map[string]any{"css": {"empty-rules": true}},
	})

	if !reflect.DeepEqual(ed.opts, opts) {
		t.Fatalf("editor options: got %v, want %v", ed.opts, opts)
	}
	if inst.Editor != Editor(ed) {
		t.Fatalf("instance editor handle mismatch")
	}

	lo, ok := ed.Option(LintOption).(LintOptions)
	if !ok {
		t.Fatalf("lint option: got %T, want LintOptions", ed.Option(LintOption))
	}
	if got := lo.Rules["css"]["empty-rules"]; got != true {
		t.Fatalf("merged css rule: got %v, want true", got)
	}
	if got := lo.Rules["html"]["tag-pair"]; got != true {
		t.Fatalf("default html rule: got %v, want true", got)
	}
}

func TestInstance_LintNoticeDeferredWhileTypingThenDeliveredOnBlur(t *testing.T) {
	_, inst, ed, log := setup(t, Settings{})
	ed.focus()

	ed.lint(errAt(0, "a"))
	ed.lint(errAt(0, "a"))
	if got, want := len(log.changes), 1; got != want {
		t.Fatalf("change callbacks: got %d, want %d", got, want)
	}
	if got := len(log.notices); got != 0 {
		t.Fatalf("notices while focused: got %d, want 0", got)
	}
	if !inst.NoticePending() {
		t.Fatalf("notice should be pending")
	}

	ed.blur()
	if got, want := len(log.notices), 1; got != want {
		t.Fatalf("notices after blur: got %d, want %d", got, want)
	}
	if log.owners[0] != inst {
		t.Fatalf("notice handle should be the instance")
	}
	if diff := cmp.Diff(annotation.ErrorSet{errAt(0, "a")}, inst.LintErrors()); diff != "" {
		t.Fatalf("current errors (-want +got):\n%s", diff)
	}
}

func TestInstance_PointerDownOutsideDeliversNotice(t *testing.T) {
	_, _, ed, log := setup(t, Settings{})
	ed.focus()
	ed.lint(errAt(0, "a"))

	ed.hit = HitCompletionItem
	ed.Dispatch(&Event{Kind: EventPointerDown, X: 3, Y: 4})
	ed.hit = HitEditor
	ed.Dispatch(&Event{Kind: EventPointerDown, X: 1, Y: 1})
	if got := len(log.notices); got != 0 {
		t.Fatalf("notices after inside presses: got %d, want 0", got)
	}

	ed.hit = HitOutside
	ed.Dispatch(&Event{Kind: EventPointerDown, X: 90, Y: 40})
	if got, want := len(log.notices), 1; got != want {
		t.Fatalf("notices after outside press: got %d, want %d", got, want)
	}
}

func TestInstance_CompletionEndSchedulesGuardedCheck(t *testing.T) {
	reg, inst, ed, log := setup(t, Settings{NoticeGrace: time.Millisecond})
	ed.focus()
	ed.lint(errAt(0, "a"))

	cmd := ed.Dispatch(&Event{Kind: EventCompletionEnd})
	if cmd == nil {
		t.Fatalf("completion end should schedule a deferred check")
	}
	msg := cmd()
	if _, ok := msg.(lint.DeferredCheckMsg); !ok {
		t.Fatalf("scheduled msg: got %T, want lint.DeferredCheckMsg", msg)
	}

	// Focus is back when the timer fires.
	reg.Update(msg)
	if got := len(log.notices); got != 0 {
		t.Fatalf("notices with focus: got %d, want 0", got)
	}

	ed.focused = false
	reg.Update(msg)
	if got, want := len(log.notices), 1; got != want {
		t.Fatalf("notices without focus: got %d, want %d", got, want)
	}
	if inst.NoticePending() {
		t.Fatalf("nothing should be pending")
	}
}

func TestInstance_DeferredCheckForOtherInstanceIsIgnored(t *testing.T) {
	_, inst, ed, log := setup(t, Settings{})
	ed.focus()
	ed.lint(errAt(0, "a"))
	ed.focused = false

	inst.Update(lint.DeferredCheckMsg{Tag: &Instance{}})
	inst.Update(lint.DeferredCheckMsg{Tag: "main"})
	if got := len(log.notices); got != 0 {
		t.Fatalf("notices for foreign tags: got %d, want 0", got)
	}
}

func TestInstance_ClosedIgnoresStaleTimer(t *testing.T) {
	_, inst, ed, log := setup(t, Settings{})
	ed.focus()
	ed.lint(errAt(0, "a"))
	inst.Close()

	ed.focused = false
	inst.Update(lint.DeferredCheckMsg{Tag: inst})
	if got := len(log.notices); got != 0 {
		t.Fatalf("notices after close: got %d, want 0", got)
	}
}

func TestInstance_KeyUpTriggersCompletion(t *testing.T) {
	_, _, ed, _ := setup(t, Settings{})
	ed.focus()

	ed.token = complete.TokenContext{Type: complete.TokenTag, InnerMode: complete.ModeHTML}
	ed.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if got, want := len(ed.shows), 1; got != want {
		t.Fatalf("show calls for tag letter: got %d, want %d", got, want)
	}
	if ed.shows[0].CompleteSingle {
		t.Fatalf("completion must not auto-insert a single match")
	}

	ed.token = complete.TokenContext{Type: complete.TokenString, InnerMode: complete.ModeHTML}
	ed.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if got, want := len(ed.shows), 1; got != want {
		t.Fatalf("show calls for string letter: got %d, want %d", got, want)
	}

	ed.token = complete.TokenContext{InnerMode: complete.ModeCSS}
	ed.line = "color: "
	ed.key(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if got, want := len(ed.shows), 2; got != want {
		t.Fatalf("show calls for css colon space: got %d, want %d", got, want)
	}

	ed.token = complete.TokenContext{Type: complete.TokenTag, InnerMode: complete.ModeHTML}
	ed.session = true
	ed.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if got, want := len(ed.shows), 2; got != want {
		t.Fatalf("show calls during session: got %d, want %d", got, want)
	}
}

func TestInstance_EscapeTabMovesFocus(t *testing.T) {
	next := 0
	_, inst, ed, _ := setup(t, Settings{OnTabNext: func() { next++ }})
	ed.focus()

	ed.key(tea.KeyMsg{Type: tea.KeyEsc})
	if got, want := inst.TabState(), tabgate.StateEscapePending; got != want {
		t.Fatalf("tab state after esc: got %v, want %v", got, want)
	}
	if !ed.key(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Fatalf("tab after esc must be consumed")
	}
	if next != 1 {
		t.Fatalf("OnTabNext calls: got %d, want 1", next)
	}
	if ed.key(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Fatalf("second tab must not be consumed")
	}
	if next != 1 {
		t.Fatalf("OnTabNext calls after second tab: got %d, want 1", next)
	}

	ed.key(tea.KeyMsg{Type: tea.KeyEsc})
	ed.blur()
	ed.focus()
	if ed.key(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Fatalf("tab after refocus must not be consumed")
	}
}

func TestInstance_FocusRevealsEditorOutOfView(t *testing.T) {
	_, _, ed, _ := setup(t, Settings{})

	ed.focus()
	if got := ed.scrolled; got != 0 {
		t.Fatalf("scrolls while in view: got %d, want 0", got)
	}

	ed.inView = false
	ed.focus()
	if got, want := ed.scrolled, 1; got != want {
		t.Fatalf("scrolls while out of view: got %d, want %d", got, want)
	}
}

func TestInstance_CloseDisposesHandlers(t *testing.T) {
	_, inst, ed, log := setup(t, Settings{})
	if got := ed.Len(EventLint); got != 1 {
		t.Fatalf("lint handlers: got %d, want 1", got)
	}

	inst.Close()
	inst.Close()
	for _, kind := range []EventKind{EventFocus, EventBlur, EventKeyDown, EventKeyUp, EventLint, EventCompletionEnd, EventPointerDown} {
		if got := ed.Len(kind); got != 0 {
			t.Fatalf("%v handlers after close: got %d, want 0", kind, got)
		}
	}
	if !inst.Closed() {
		t.Fatalf("instance should report closed")
	}

	ed.lint(errAt(0, "a"))
	if got := len(log.changes); got != 0 {
		t.Fatalf("changes after close: got %d, want 0", got)
	}
}

func TestInstance_NilCallbacksAreTolerated(t *testing.T) {
	ff := &fakeFactory{}
	reg := NewRegistry(ff.create)
	Initialize(reg, "bare", Settings{})
	ed := ff.editors["bare"]

	ed.focus()
	ed.lint(errAt(0, "a"))
	ed.blur()
	ed.key(tea.KeyMsg{Type: tea.KeyEsc})
	ed.key(tea.KeyMsg{Type: tea.KeyTab})
}
