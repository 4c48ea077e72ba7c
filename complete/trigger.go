package complete

import (
	"regexp"

	"github.com/iw2rmb/flourish-assist/internal/grapheme"
)

var propertyColonRE = regexp.MustCompile(`:\s+$`)

// Input is everything the trigger looks at after a key is released.
type Input struct {
	Token            TokenContext
	LineBeforeCursor string
	Key              string
	SessionActive    bool
}

// Options is passed to the completion engine.
type Options struct {
	// CompleteSingle inserts a lone candidate without showing the list.
	CompleteSingle bool
}

// ShouldTrigger reports whether the completion list should be requested.
func ShouldTrigger(in Input) bool {
	letter := grapheme.IsLetter(in.Key)

	// An open session already refilters on typed characters.
	if in.SessionActive && letter {
		return false
	}

	tok := in.Token
	if tok.Type == TokenString || tok.Type == TokenComment {
		return false
	}

	switch tok.InnerMode {
	case ModeHTML, ModeXML:
		switch {
		case in.Key == "<":
			return true
		case in.Key == "/" && tok.Type == TokenTag:
			return true
		case letter && (tok.Type == TokenTag || tok.Type == TokenAttribute):
			return true
		case in.Key == "=" && tok.Text == "=" && tok.TagName != "":
			return true
		}
		return false
	case ModeCSS:
		switch {
		case letter, in.Key == ":":
			return true
		case grapheme.IsSpace(in.Key) && propertyColonRE.MatchString(in.LineBeforeCursor):
			return true
		}
		return false
	case ModeJavaScript:
		return letter || in.Key == "."
	case ModeCLike:
		if !IsPHP(tok.HostMode) {
			return false
		}
		return tok.Type == TokenKeyword || tok.Type == TokenVariable
	default:
		return false
	}
}

// Trigger invokes Show when a released key warrants completion.
type Trigger struct {
	Show func(Options)
}

// KeyUp evaluates in and reports whether completion was requested.
// A nil Show is skipped.
func (t Trigger) KeyUp(in Input) bool {
	if !ShouldTrigger(in) {
		return false
	}
	if t.Show != nil {
		t.Show(Options{CompleteSingle: false})
	}
	return true
}
