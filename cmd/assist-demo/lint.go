package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	assist "github.com/iw2rmb/flourish-assist"
	"github.com/iw2rmb/flourish-assist/annotation"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

type openTag struct {
	name string
	at   annotation.Pos
}

// lintHTML reports unbalanced tags. rules are the "html" rules of the editor's
// lint option.
func lintHTML(src string, rules map[string]any) []annotation.Annotation {
	var out []annotation.Annotation
	z := html.NewTokenizer(strings.NewReader(src))
	var stack []openTag
	off := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				out = append(out, at(src, off, annotation.SeverityError, z.Err().Error()))
			}
			break
		}
		start := off
		// TagName lowercases the buffer in place.
		raw := append([]byte(nil), z.Raw()...)
		off += len(raw)

		name, _ := z.TagName()
		tag := string(name)
		if rule(rules, "tagname-lowercase") && tag != "" && tagHasUpper(raw) {
			out = append(out, at(src, start, annotation.SeverityWarning, fmt.Sprintf("Tag name <%s> should be lowercase", tag)))
		}

		switch tt {
		case html.StartTagToken:
			if !voidElements[tag] {
				stack = append(stack, openTag{name: tag, at: posAt(src, start)})
			}
		case html.EndTagToken:
			if !rule(rules, "tag-pair") {
				continue
			}
			i := len(stack) - 1
			for i >= 0 && stack[i].name != tag {
				i--
			}
			if i < 0 {
				out = append(out, at(src, start, annotation.SeverityError, fmt.Sprintf("Unexpected end tag </%s>", tag)))
				continue
			}
			for _, t := range stack[i+1:] {
				out = append(out, unclosed(t))
			}
			stack = stack[:i]
		}
	}

	if rule(rules, "tag-pair") {
		for _, t := range stack {
			out = append(out, unclosed(t))
		}
	}
	return out
}

// lintCSS reports unbalanced braces.
func lintCSS(src string, rules map[string]any) []annotation.Annotation {
	if !rule(rules, "errors") {
		return nil
	}
	var out []annotation.Annotation
	var open []int
	for i, r := range src {
		switch r {
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				out = append(out, at(src, i, annotation.SeverityError, "Unexpected }"))
				continue
			}
			open = open[:len(open)-1]
		}
	}
	for _, i := range open {
		out = append(out, at(src, i, annotation.SeverityError, "Unclosed {"))
	}
	return out
}

// runLint lints ed's text with the rules stored under its lint option.
func runLint(ed assist.Editor, mode, text string) []annotation.Annotation {
	opts, _ := ed.Option(assist.LintOption).(assist.LintOptions)
	switch mode {
	case "css":
		return lintCSS(text, opts.Rules["css"])
	default:
		return lintHTML(text, opts.Rules["html"])
	}
}

func rule(rules map[string]any, name string) bool {
	v, _ := rules[name].(bool)
	return v
}

func tagHasUpper(raw []byte) bool {
	s := strings.TrimLeft(string(raw), "</")
	for _, r := range s {
		if r == ' ' || r == '>' || r == '/' || r == '\n' || r == '\t' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func unclosed(t openTag) annotation.Annotation {
	return annotation.Annotation{
		Severity: annotation.SeverityError,
		Message:  fmt.Sprintf("Tag <%s> is not closed", t.name),
		Range:    annotation.Range{Start: t.at, End: annotation.Pos{Row: t.at.Row, Col: t.at.Col + len(t.name) + 1}},
	}
}

func at(src string, off int, sev annotation.Severity, msg string) annotation.Annotation {
	p := posAt(src, off)
	return annotation.Annotation{
		Severity: sev,
		Message:  msg,
		Range:    annotation.Range{Start: p, End: annotation.Pos{Row: p.Row, Col: p.Col + 1}},
	}
}

// posAt converts a byte offset into a rune position.
func posAt(src string, off int) annotation.Pos {
	if off > len(src) {
		off = len(src)
	}
	before := src[:off]
	row := strings.Count(before, "\n")
	line := before[strings.LastIndex(before, "\n")+1:]
	return annotation.Pos{Row: row, Col: len([]rune(line))}
}
