package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs pages in Markdown format.
// This format is designed for publishing through a static site generator.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and collapsible details
// 3. GitHub-flavored markdown alerts and mermaid charts
type MarkdownWriter struct {
	baseWriter

	// chart enables the regulator pie chart.
	chart bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithRegulatorChart toggles the mermaid regulator pie chart.
func WithRegulatorChart(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.chart = enabled
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		chart:      true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the page in Markdown format.
func (w *MarkdownWriter) Write(result *model.PageResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	f := content.NewFormatter(language.English)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeBrokers(md, result, f)
	w.writeFAQ(md, result)
	w.writeRelated(md, result)
	w.writeFooter(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the breadcrumb trail, heading and lead paragraph.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.PageResult) {
	c := &result.Content

	if len(c.Breadcrumbs) > 0 {
		crumbs := make([]string, len(c.Breadcrumbs))
		for i, b := range c.Breadcrumbs {
			crumbs[i] = link(b.Name, b.URL)
		}
		md.PlainText(strings.Join(crumbs, " › "))
		md.PlainText("")
	}

	md.H1(c.Heading)
	md.PlainText("")
	if c.Subheading != "" {
		md.PlainText(c.Subheading)
		md.PlainText("")
	}
	if len(c.Highlights) > 0 {
		md.BulletList(c.Highlights...)
		md.PlainText("")
	}
}

// writeSummary writes the stats table, key facts and regulator chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.PageResult) {
	c := &result.Content

	md.H2("Summary")
	md.PlainText("")

	if !c.HasResults {
		md.Note(content.NoResultsText)
		md.PlainText("")
		return
	}

	md.PlainText(c.Intro)
	md.PlainText("")
	md.BulletList(c.KeyFacts...)
	md.PlainText("")

	if w.chart {
		w.writePieChart(md, result)
	}
}

// writePieChart writes a mermaid pie chart of regulator coverage.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.PageResult) {
	counts := regulatorCounts(result.Brokers)
	if len(counts) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Regulator coverage"),
		piechart.WithShowData(true),
	)
	for _, rc := range counts {
		chart.LabelAndIntValue(rc.name, uint64(rc.count)) //nolint:gosec // counts are positive
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

type regulatorCount struct {
	name  string
	count int
}

// regulatorCounts counts brokers per regulator, in order of first appearance.
func regulatorCounts(list []model.Broker) []regulatorCount {
	var out []regulatorCount
	index := make(map[string]int)
	for i := range list {
		for _, r := range list[i].Regulation.Regulators {
			if j, ok := index[r]; ok {
				out[j].count++
				continue
			}
			index[r] = len(out)
			out = append(out, regulatorCount{name: r, count: 1})
		}
	}
	return out
}

// writeBrokers writes the ranked broker table.
func (w *MarkdownWriter) writeBrokers(md *markdown.Markdown, result *model.PageResult, f *content.Formatter) {
	if len(result.Brokers) == 0 {
		return
	}

	md.H2("Top Brokers")
	md.PlainText("")

	rows := make([][]string, len(result.Brokers))
	for i := range result.Brokers {
		b := &result.Brokers[i]
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"**" + b.Name + "**",
			f.Decimal(b.Score) + "/10",
			f.USD(b.Accessibility.MinDeposit),
			f.Decimal(b.TradingConditions.Spreads.EURUSD),
			orDash(b.TradingConditions.MaxLeverage),
			orDash(strings.Join(b.Regulation.Regulators, ", ")),
			orDash(strings.Join(b.Technology.Platforms, ", ")),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Broker", "Score", "Min deposit", "EUR/USD", "Leverage", "Regulators", "Platforms"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFAQ writes each question as a collapsible details block.
func (w *MarkdownWriter) writeFAQ(md *markdown.Markdown, result *model.PageResult) {
	if len(result.Content.FAQs) == 0 {
		return
	}

	md.H2("Frequently Asked Questions")
	md.PlainText("")
	for _, faq := range result.Content.FAQs {
		md.Details(faq.Question, StripHTML(faq.Answer))
	}
	md.PlainText("")
}

// writeRelated writes the related page links.
func (w *MarkdownWriter) writeRelated(md *markdown.Markdown, result *model.PageResult) {
	if len(result.Content.RelatedPages) == 0 {
		return
	}

	md.H2("Related Pages")
	md.PlainText("")
	links := make([]string, len(result.Content.RelatedPages))
	for i, rp := range result.Content.RelatedPages {
		links[i] = link(rp.Title, rp.URL)
	}
	md.BulletList(links...)
	md.PlainText("")
}

// writeFooter writes the page footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, result *model.PageResult) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated %s, ranked by %s*",
		result.GeneratedAt.Format("2006-01-02"), result.Sort.String())
}

// WriteComparison outputs the comparison as a Markdown table with one
// column per broker.
func (w *MarkdownWriter) WriteComparison(c *Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Broker Comparison")
	md.PlainText("")

	switch {
	case len(c.Brokers) == 0:
		md.Tip("No brokers selected. Add up to " + strconv.Itoa(c.Max) + " brokers to compare them side by side.")
		md.PlainText("")
	default:
		rows := comparisonRows(c.Brokers, content.NewFormatter(language.English))
		md.Table(markdown.TableSet{
			Header: rows[0],
			Rows:   rows[1:],
		})
		md.PlainText("")
		if len(c.Brokers) >= c.Max {
			md.Note(fmt.Sprintf("You can compare up to %d brokers at a time.", c.Max))
			md.PlainText("")
		}
	}

	if len(c.Missing) > 0 {
		md.Warningf("%d selected broker(s) are no longer in the catalog: %s",
			len(c.Missing), strings.Join(c.Missing, ", "))
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// link formats a Markdown inline link.
func link(text, url string) string {
	return "[" + text + "](" + url + ")"
}
