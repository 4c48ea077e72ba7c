package main

import "github.com/iw2rmb/flourish-assist/complete"

var htmlTags = []string{
	"a", "article", "aside", "body", "button", "div", "footer", "form", "h1", "h2",
	"head", "header", "html", "img", "input", "label", "li", "link", "main", "meta",
	"nav", "ol", "option", "p", "script", "section", "select", "span", "style",
	"table", "td", "textarea", "th", "title", "tr", "ul",
}

var htmlAttributes = []string{
	"alt", "class", "disabled", "for", "href", "id", "name", "placeholder",
	"rel", "src", "style", "title", "type", "value",
}

var cssProperties = []string{
	"align-items", "background", "background-color", "border", "border-radius",
	"color", "display", "flex", "flex-direction", "font-family", "font-size",
	"font-weight", "gap", "grid-template-columns", "height", "justify-content",
	"margin", "padding", "position", "text-align", "width",
}

var cssValues = []string{
	"absolute", "auto", "block", "bold", "center", "flex", "grid", "inherit",
	"inline", "none", "relative", "solid", "transparent",
}

var jsWords = []string{
	"addEventListener", "const", "console", "document", "function", "let",
	"querySelector", "return", "window",
}

// completer picks a vocabulary from the token context.
func completer(tok complete.TokenContext, _ string) []string {
	switch tok.InnerMode {
	case complete.ModeHTML, complete.ModeXML:
		if tok.Type == complete.TokenAttribute || (tok.TagName != "" && tok.Type != complete.TokenTag) {
			return htmlAttributes
		}
		return htmlTags
	case complete.ModeCSS:
		if tok.Type == complete.TokenOther || tok.Type == complete.TokenKeyword {
			return append(append([]string(nil), cssProperties...), cssValues...)
		}
		return cssProperties
	case complete.ModeJavaScript:
		return jsWords
	default:
		return nil
	}
}
