package payload

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup produced by the rich-text editor and decodes
// entities. Line breaks and block boundaries become newlines; runs of other
// whitespace collapse to a single space and empty lines are dropped.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return normalizeLines(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return normalizeLines(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if isRawTag(name) {
				skip++
			}
			b.WriteString(tagBreak(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawTag(name) && skip > 0 {
				skip--
			}
			if string(name) != "br" {
				b.WriteString(tagBreak(name))
			}
		}
	}
}

func normalizeLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func isRawTag(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// tagBreak is the separator a tag contributes to the extracted text.
func tagBreak(name []byte) string {
	switch string(name) {
	case "br", "p", "div", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "tr", "hr":
		return "\n"
	case "td", "th":
		return " "
	}
	return ""
}
