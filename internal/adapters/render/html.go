// Package render turns answer text markers into HTML for the chat UI.
// It changes presentation only: every character of the answer text is kept,
// apart from the list and bold markers themselves.
package render

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	numberedPattern = regexp.MustCompile(`^(\d+)[.):]?\s+`)
)

type blockKind int

const (
	blockNone blockKind = iota
	blockBullets
	blockNumbered
)

// HTML renders answer text:
//   - **text** becomes <strong>text</strong>
//   - lines starting with • or - become unordered list items
//   - lines starting with a number and optional separator become ordered list
//     items that keep their own number
//   - blank lines become spacing
//   - everything else becomes a paragraph
func HTML(text string) template.HTML {
	var sb strings.Builder
	open := blockNone

	closeList := func() {
		switch open {
		case blockBullets:
			sb.WriteString("</ul>")
		case blockNumbered:
			sb.WriteString("</ol>")
		}
		open = blockNone
	}
	openList := func(kind blockKind) {
		if open == kind {
			return
		}
		closeList()
		if kind == blockBullets {
			sb.WriteString("<ul>")
		} else {
			sb.WriteString("<ol>")
		}
		open = kind
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeList()
			sb.WriteString(`<div class="spacer"></div>`)
		case strings.HasPrefix(trimmed, "•"), strings.HasPrefix(trimmed, "-"):
			openList(blockBullets)
			item := strings.TrimLeft(trimmed, "•-")
			sb.WriteString("<li>" + inline(strings.TrimSpace(item)) + "</li>")
		case numberedPattern.MatchString(trimmed):
			openList(blockNumbered)
			m := numberedPattern.FindStringSubmatch(trimmed)
			item := trimmed[len(m[0]):]
			sb.WriteString(`<li value="` + m[1] + `">` + inline(item) + "</li>")
		default:
			closeList()
			sb.WriteString("<p>" + inline(trimmed) + "</p>")
		}
	}
	closeList()

	return template.HTML(sb.String())
}

// inline escapes a line and applies bold markers.
func inline(s string) string {
	return boldPattern.ReplaceAllString(html.EscapeString(s), "<strong>$1</strong>")
}
