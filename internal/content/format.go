package content

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers and labels for one language.
// A Formatter is not safe for concurrent use; create one per goroutine.
type Formatter struct {
	printer *message.Printer
	title   cases.Caser
}

// NewFormatter returns a formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		title:   cases.Title(tag),
	}
}

// USD formats an amount in US dollars with grouping, e.g. "$2,000" or
// "$12.50". Whole amounts have no fraction digits.
func (f *Formatter) USD(amount float64) string {
	if amount == math.Trunc(amount) {
		return f.printer.Sprintf("$%d", int64(amount))
	}
	return f.printer.Sprintf("$%.2f", amount)
}

// Count formats an integer with grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Decimal formats v with one fraction digit, e.g. "8.5".
func (f *Formatter) Decimal(v float64) string {
	return f.printer.Sprintf("%.1f", v)
}

// segmentWords replaces title-cased words that have a fixed spelling.
var segmentWords = map[string]string{
	"And": "&",
	"Usa": "USA",
	"Uk":  "UK",
}

// SegmentName turns a URL path segment into a breadcrumb label:
// "uk-fca-regulated" becomes "UK Fca Regulated".
func (f *Formatter) SegmentName(segment string) string {
	words := strings.Fields(strings.ReplaceAll(segment, "-", " "))
	for i, w := range words {
		w = f.title.String(w)
		if r, ok := segmentWords[w]; ok {
			w = r
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}
