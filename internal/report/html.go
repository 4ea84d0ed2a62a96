package report

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML returns the text content of an HTML fragment with runs of
// whitespace collapsed to single spaces. Character references are decoded,
// so "<strong>ASIC</strong> &amp; FCA" becomes "ASIC & FCA".
//
// Design decision: a tokenizer is used instead of a regular expression
// because catalog text may contain attributes with ">" or entities that a
// pattern would mangle.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way return what was read.
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "li", "div":
				sb.WriteByte(' ')
			}
		}
	}
}
