package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/model"
	"golang.org/x/text/language"
)

// SimpleWriter outputs human-readable text pages.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// showFAQ controls whether the FAQ section is printed.
	showFAQ bool

	// verbose adds the per-broker description under the table.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowFAQ configures the writer to print the FAQ section.
func WithShowFAQ(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showFAQ = show
	}
}

// WithVerbose enables verbose output with broker descriptions.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showFAQ:    true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the page in human-readable format.
func (w *SimpleWriter) Write(result *model.PageResult) (int, error) {
	var sb strings.Builder
	f := content.NewFormatter(language.English)

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writeBrokers(&sb, result, f)
	if w.showFAQ {
		w.writeFAQ(&sb, result)
	}
	w.writeRelated(&sb, result)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the page title and metadata.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.PageResult) {
	c := &result.Content
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(" " + c.Heading + "\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Title:     %s\n", c.Title)
	fmt.Fprintf(sb, "URL:       %s\n", c.CanonicalURL)
	fmt.Fprintf(sb, "Sort:      %s\n", result.Sort.String())
	if result.ErrorMessage != "" {
		fmt.Fprintf(sb, "Status:    ERROR - %s\n", result.ErrorMessage)
	}
	if c.Subheading != "" {
		sb.WriteString("\n" + StripHTML(c.Subheading) + "\n")
	}
	sb.WriteString("\n")
}

// writeSummary writes the summary line and key facts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.PageResult) {
	c := &result.Content
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	sb.WriteString(c.Summary + "\n")
	for _, fact := range c.KeyFacts {
		sb.WriteString("  * " + fact + "\n")
	}
	sb.WriteString("\n")
}

// writeBrokers writes the ranked broker table.
func (w *SimpleWriter) writeBrokers(sb *strings.Builder, result *model.PageResult, f *content.Formatter) {
	sb.WriteString("BROKERS\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")

	if len(result.Brokers) == 0 {
		sb.WriteString(content.NoResultsText + "\n\n")
		return
	}

	fmt.Fprintf(sb, "%-4s %-28s %6s %10s %7s %-10s %s\n",
		"#", "Broker", "Score", "Deposit", "Spread", "Leverage", "Regulators")
	for i := range result.Brokers {
		b := &result.Brokers[i]
		fmt.Fprintf(sb, "%-4d %-28s %6.1f %10s %7.1f %-10s %s\n",
			i+1,
			truncateString(b.Name, 28),
			b.Score,
			f.USD(b.Accessibility.MinDeposit),
			b.TradingConditions.Spreads.EURUSD,
			truncateString(orDash(b.TradingConditions.MaxLeverage), 10),
			orDash(strings.Join(b.Regulation.Regulators, ", ")),
		)
		if w.verbose && b.Description != "" {
			sb.WriteString("     " + StripHTML(b.Description) + "\n")
		}
	}
	sb.WriteString("\n")
}

// writeFAQ writes the question/answer pairs with HTML removed.
func (w *SimpleWriter) writeFAQ(sb *strings.Builder, result *model.PageResult) {
	if len(result.Content.FAQs) == 0 {
		return
	}
	sb.WriteString("FAQ\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	for _, faq := range result.Content.FAQs {
		sb.WriteString("Q: " + faq.Question + "\n")
		sb.WriteString("A: " + StripHTML(faq.Answer) + "\n\n")
	}
}

// writeRelated writes the related page links.
func (w *SimpleWriter) writeRelated(sb *strings.Builder, result *model.PageResult) {
	if len(result.Content.RelatedPages) == 0 {
		return
	}
	sb.WriteString("RELATED\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	for _, rp := range result.Content.RelatedPages {
		fmt.Fprintf(sb, "  %s (%s)\n", rp.Title, rp.URL)
	}
	sb.WriteString("\n")
}

// WriteComparison outputs the selected brokers one column each.
func (w *SimpleWriter) WriteComparison(c *Comparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Comparison (%d/%d)\n", len(c.Brokers), c.Max)
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")

	if len(c.Brokers) == 0 {
		sb.WriteString("No brokers selected.\n")
	} else {
		rows := comparisonRows(c.Brokers, content.NewFormatter(language.English))
		width := 0
		for _, r := range rows {
			width = max(width, len(r[0]))
		}
		for _, r := range rows {
			fmt.Fprintf(&sb, "%-*s", width+2, r[0])
			for _, cell := range r[1:] {
				fmt.Fprintf(&sb, "%-22s", truncateString(cell, 20))
			}
			sb.WriteString("\n")
		}
	}

	for _, id := range c.Missing {
		fmt.Fprintf(&sb, "warning: %s is no longer in the catalog\n", id)
	}

	return w.output.Write([]byte(sb.String()))
}

// comparisonRows returns the comparison table as rows of
// [label, broker1, broker2, ...].
func comparisonRows(list []model.Broker, f *content.Formatter) [][]string {
	type field struct {
		label string
		value func(b *model.Broker) string
	}
	fields := []field{
		{"Broker", func(b *model.Broker) string { return b.Name }},
		{"Score", func(b *model.Broker) string { return f.Decimal(b.Score) + "/10" }},
		{"Min deposit", func(b *model.Broker) string { return f.USD(b.Accessibility.MinDeposit) }},
		{"EUR/USD spread", func(b *model.Broker) string { return f.Decimal(b.TradingConditions.Spreads.EURUSD) + " pips" }},
		{"Max leverage", func(b *model.Broker) string { return orDash(b.TradingConditions.MaxLeverage) }},
		{"Commission", func(b *model.Broker) string { return orDash(b.TradingConditions.Commission) }},
		{"Regulators", func(b *model.Broker) string { return orDash(strings.Join(b.Regulation.Regulators, ", ")) }},
		{"Platforms", func(b *model.Broker) string { return orDash(strings.Join(b.Technology.Platforms, ", ")) }},
		{"Execution", func(b *model.Broker) string { return orDash(b.Technology.ExecutionType) }},
		{"Founded", func(b *model.Broker) string {
			if b.FoundingYear == 0 {
				return "-"
			}
			return fmt.Sprint(b.FoundingYear)
		}},
	}

	rows := make([][]string, len(fields))
	for i, fd := range fields {
		row := make([]string, 0, len(list)+1)
		row = append(row, fd.label)
		for j := range list {
			row = append(row, fd.value(&list[j]))
		}
		rows[i] = row
	}
	return rows
}
