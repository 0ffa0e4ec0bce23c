package forms

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxFieldLen caps any single submitted field, in runes
const maxFieldLen = 5000

// PlainText normalises submitted text for logging. Whitespace is collapsed
// and the length capped. Markup is stripped only when the text holds real
// HTML; anything else, such as "x<y", is kept as written.
func PlainText(s string) string {
	if hasMarkup(s) {
		s = extractText(s)
	}
	return truncate(strings.Join(strings.Fields(s), " "))
}

// hasMarkup reports whether s contains a known HTML element that is either
// self-closing or closed by a matching end tag
func hasMarkup(s string) bool {
	z := html.NewTokenizer(strings.NewReader(s))
	open := make(map[atom.Atom]bool)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a != 0 {
				open[a] = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a != 0 && open[a] {
				return true
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				return true
			}
		}
	}
}

// extractText returns the visible text of an HTML fragment
func extractText(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	// Elements whose text is never shown
	skipTags := map[atom.Atom]bool{
		atom.Script: true, atom.Style: true, atom.Noscript: true,
		atom.Iframe: true, atom.Template: true,
	}

	var sb strings.Builder
	skipping := atom.Atom(0)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return s
			}
			return sb.String()
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case tt == html.StartTagToken && skipping == 0 && skipTags[a]:
				skipping = a
			case tt == html.EndTagToken && a == skipping:
				skipping = 0
			}
			sb.WriteString(" ")
		case html.TextToken:
			if skipping == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxFieldLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxFieldLen]) + "..."
}
