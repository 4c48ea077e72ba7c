package textareahost

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/iw2rmb/flourish-assist/complete"
)

func lexerFor(hostMode string) chroma.Lexer {
	name := ""
	switch complete.ParseMode(hostMode) {
	case complete.ModeHTML:
		name = "html"
	case complete.ModeXML:
		name = "xml"
	case complete.ModeCSS:
		name = "css"
	case complete.ModeJavaScript:
		name = "javascript"
	case complete.ModeCLike:
		name = "c"
	}
	if complete.IsPHP(hostMode) {
		name = "php"
	}
	if l := lexers.Get(name); name != "" && l != nil {
		return l
	}
	return lexers.Fallback
}

func tokenType(t chroma.TokenType) complete.TokenType {
	switch {
	case t.InCategory(chroma.Comment):
		return complete.TokenComment
	case t.InSubCategory(chroma.LiteralString):
		return complete.TokenString
	case t == chroma.NameTag:
		return complete.TokenTag
	case t == chroma.NameAttribute:
		return complete.TokenAttribute
	case t.InCategory(chroma.Keyword):
		return complete.TokenKeyword
	case strings.HasPrefix(t.String(), "NameVariable"):
		return complete.TokenVariable
	default:
		return complete.TokenOther
	}
}

// tokenAt returns the token that ends at or spans the rune offset off in
// text: the token just typed into when the cursor sits at its end.
func tokenAt(l chroma.Lexer, text string, off int) (chroma.Token, bool) {
	it, err := l.Tokenise(nil, text)
	if err != nil {
		return chroma.Token{}, false
	}
	pos := 0
	for _, tok := range it.Tokens() {
		n := len([]rune(tok.Value))
		if pos < off && off <= pos+n {
			return tok, true
		}
		pos += n
	}
	return chroma.Token{}, false
}

// openLiteral returns TokenString or TokenComment when the end of before sits
// inside a string or comment that is not closed yet, and TokenOther
// otherwise. Lexers give up on such input (an open
// string comes back as an error token, an open CSS comment as names), so it
// is scanned here with the rules of the inner mode.
func openLiteral(hostMode string, inner complete.Mode, before string) complete.TokenType {
	rs := []rune(innerText(hostMode, inner, before))
	markup := inner == complete.ModeHTML || inner == complete.ModeXML

	const (
		inCode = iota
		inTag
		inString
		inLineComment
		inBlockComment
		inMarkupComment
	)
	state, ret := inCode, inCode
	var quote rune
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch state {
		case inCode:
			switch {
			case markup && hasAt(rs, i, "<!--"):
				state = inMarkupComment
				i += 3
			case markup && r == '<' && i+1 < len(rs) && (isWordRune(rs[i+1]) || rs[i+1] == '/'):
				state = inTag
			case markup:
			case hasAt(rs, i, "/*"):
				state = inBlockComment
				i++
			case inner != complete.ModeCSS && hasAt(rs, i, "//"):
				state = inLineComment
				i++
			case r == '"' || r == '\'' || (r == '`' && inner == complete.ModeJavaScript):
				state, ret, quote = inString, inCode, r
			}
		case inTag:
			switch r {
			case '>':
				state = inCode
			case '"', '\'':
				state, ret, quote = inString, inTag, r
			}
		case inString:
			switch {
			case r == '\\' && !markup:
				i++
			case r == quote:
				state = ret
			case r == '\n' && quote != '`' && !markup:
				state = ret
			}
		case inLineComment:
			if r == '\n' {
				state = inCode
			}
		case inBlockComment:
			if hasAt(rs, i, "*/") {
				state = inCode
				i++
			}
		case inMarkupComment:
			if hasAt(rs, i, "-->") {
				state = inCode
				i += 2
			}
		}
	}

	switch state {
	case inString:
		return complete.TokenString
	case inLineComment, inBlockComment, inMarkupComment:
		return complete.TokenComment
	}
	return complete.TokenOther
}

// innerText trims before to the embedded block the cursor is in: the body of
// an open <script> or <style>, or the code after <?php.
func innerText(hostMode string, inner complete.Mode, before string) string {
	host := complete.ParseMode(hostMode)
	open := ""
	switch {
	case complete.IsPHP(hostMode) && inner == complete.ModeCLike:
		open = "<?php"
	case inner == complete.ModeJavaScript && host != complete.ModeJavaScript:
		open = "<script"
	case inner == complete.ModeCSS && host != complete.ModeCSS:
		open = "<style"
	default:
		return before
	}
	lower := strings.ToLower(before)
	i := strings.LastIndex(lower, open)
	if i < 0 || len(lower) != len(before) {
		return before
	}
	if open == "<?php" {
		return before[i+len(open):]
	}
	if j := strings.IndexByte(lower[i:], '>'); j >= 0 {
		return before[i+j+1:]
	}
	return before
}

func hasAt(rs []rune, i int, s string) bool {
	for _, r := range s {
		if i >= len(rs) || rs[i] != r {
			return false
		}
		i++
	}
	return true
}

// innerMode resolves the language active at the end of before.
func innerMode(hostMode, before string) complete.Mode {
	host := complete.ParseMode(hostMode)
	lower := strings.ToLower(before)

	if complete.IsPHP(hostMode) {
		if strings.LastIndex(lower, "<?php") > strings.LastIndex(lower, "?>") {
			return complete.ModeCLike
		}
		host = complete.ModeHTML
	}
	if host != complete.ModeHTML {
		return host
	}
	if openBlock(lower, "script") {
		return complete.ModeJavaScript
	}
	if openBlock(lower, "style") {
		return complete.ModeCSS
	}
	return complete.ModeHTML
}

// openBlock reports whether the last <name ...> in s is not yet closed and
// its start tag is complete.
func openBlock(s, name string) bool {
	open := strings.LastIndex(s, "<"+name)
	if open < 0 || open < strings.LastIndex(s, "</"+name) {
		return false
	}
	return strings.Contains(s[open:], ">")
}

// openTagName returns the name of the tag the end of before is inside, or "".
func openTagName(before string) string {
	lt := strings.LastIndex(before, "<")
	if lt < 0 || lt < strings.LastIndex(before, ">") {
		return ""
	}
	rest := strings.TrimPrefix(before[lt+1:], "/")
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !(r == '-' || r == ':' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	if end < 0 {
		end = len(rest)
	}
	return rest[:end]
}

// wordBefore returns the identifier-like suffix of line.
func wordBefore(line string) string {
	runes := []rune(line)
	i := len(runes)
	for i > 0 && isWordRune(runes[i-1]) {
		i--
	}
	return string(runes[i:])
}

func isWordRune(r rune) bool {
	return r == '-' || r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
