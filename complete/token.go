package complete

import "strings"

type TokenType uint8

const (
	TokenOther TokenType = iota
	TokenString
	TokenComment
	TokenTag
	TokenAttribute
	TokenKeyword
	TokenVariable
)

func (t TokenType) String() string {
	switch t {
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	case TokenTag:
		return "tag"
	case TokenAttribute:
		return "attribute"
	case TokenKeyword:
		return "keyword"
	case TokenVariable:
		return "variable"
	default:
		return "other"
	}
}

// Mode is the language sub-mode active at the cursor.
type Mode uint8

const (
	ModeOther Mode = iota
	ModeHTML
	ModeXML
	ModeCSS
	ModeJavaScript
	ModeCLike
)

func (m Mode) String() string {
	switch m {
	case ModeHTML:
		return "html"
	case ModeXML:
		return "xml"
	case ModeCSS:
		return "css"
	case ModeJavaScript:
		return "javascript"
	case ModeCLike:
		return "clike"
	default:
		return "other"
	}
}

// ParseMode maps an editor mode name or MIME type to a Mode.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htmlmixed", "text/html":
		return ModeHTML
	case "xml", "text/xml", "application/xml":
		return ModeXML
	case "css", "text/css", "scss", "text/x-scss", "less", "text/x-less":
		return ModeCSS
	case "javascript", "js", "text/javascript", "application/javascript", "application/json":
		return ModeJavaScript
	case "clike", "text/x-csrc", "text/x-c++src", "text/x-java", "text/x-csharp", "php", "text/x-php":
		return ModeCLike
	default:
		return ModeOther
	}
}

// IsPHP reports whether hostMode names a PHP document.
func IsPHP(hostMode string) bool {
	switch strings.ToLower(strings.TrimSpace(hostMode)) {
	case "php", "application/x-httpd-php", "application/x-httpd-php-open", "text/x-php":
		return true
	default:
		return false
	}
}

// TokenContext describes the token under the cursor. It is derived from the
// editor's tokenizer on every keystroke and never stored.
type TokenContext struct {
	Type      TokenType
	Text      string
	InnerMode Mode
	HostMode  string

	// TagName is the tokenizer's open-tag state; empty outside a tag.
	TagName string
}
