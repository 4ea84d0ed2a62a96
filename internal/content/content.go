package content

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/nao1215/brokerseo/internal/model"
	"golang.org/x/text/language"
)

const (
	// DefaultBaseURL is the site origin used for canonical URLs.
	DefaultBaseURL = "https://brokeranalysis.com"

	// DefaultTopPicks is the number of brokers summarized as top picks.
	DefaultTopPicks = 3

	// TopRegulatorCount is the number of regulators listed in key facts.
	TopRegulatorCount = 3

	// MaxMetaDescription is the length, in characters, at which derived meta
	// descriptions are cut.
	MaxMetaDescription = 160

	// NoResultsText is shown when no broker matches a page.
	NoResultsText = "No brokers found matching your criteria."
)

// seoKeywords are appended to every page's highlights.
var seoKeywords = []string{"forex broker", "online trading", "currency trading", "broker comparison"}

type options struct {
	baseURL  string
	topPicks int
	language language.Tag
}

// Option configures GeneratePageContent.
type Option func(*options)

// WithBaseURL sets the site origin for canonical and breadcrumb URLs.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTopPicks sets how many brokers are summarized as top picks.
func WithTopPicks(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.topPicks = n
		}
	}
}

// WithLanguage sets the language used to format numbers and labels.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

func newOptions(opts []Option) options {
	o := options{
		baseURL:  DefaultBaseURL,
		topPicks: DefaultTopPicks,
		language: language.AmericanEnglish,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var templates = template.Must(template.New("content").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`
{{- define "summary" -}}
{{- if .HasResults -}}
{{.Count}} {{if eq .Stats.TotalBrokers 1}}broker{{else}}brokers{{end}} found, averaging {{.AvgScore}}/10
{{- else -}}
` + NoResultsText + `
{{- end -}}
{{- end -}}

{{- define "intro" -}}
{{- if .Subheading}}{{.Subheading}} {{end -}}
{{- if .HasResults -}}
We found {{.Count}} matching {{if eq .Stats.TotalBrokers 1}}broker{{else}}brokers{{end}} with an average rating of {{.AvgScore}}/10.
{{- with .Leader}} {{.Name}} leads the list with a score of {{printf "%.1f" .Score}}/10.{{end}}
{{- else -}}
` + NoResultsText + ` Try one of the related pages below.
{{- end -}}
{{- end -}}

{{- define "meta" -}}
Compare {{if .HasResults}}{{.Count}} {{end}}{{.Title}}.
{{- with .Highlights}} {{join . ", "}}.{{end}} Ratings, spreads and minimum deposits for forex traders.
{{- end -}}
`))

// templateData is the value passed to the templates.
type templateData struct {
	model.PageConfig
	Stats      model.Stats
	HasResults bool
	Count      string
	AvgScore   string
	Leader     *model.Broker
}

// GeneratePageContent builds the page text for cfg from the ranked list.
// FAQs and related pages are passed through unchanged.
func GeneratePageContent(cfg model.PageConfig, list []model.Broker, opts ...Option) model.GeneratedContent {
	o := newOptions(opts)
	f := NewFormatter(o.language)
	stats := GenerateStats(list)

	data := templateData{
		PageConfig: cfg,
		Stats:      stats,
		HasResults: stats.TotalBrokers > 0,
		Count:      f.Count(stats.TotalBrokers),
		AvgScore:   f.Decimal(stats.AvgScore),
	}
	if len(list) > 0 {
		data.Leader = &list[0]
	}

	gc := model.GeneratedContent{
		Path:            cfg.Path,
		CanonicalURL:    o.baseURL + cfg.Path,
		Title:           cfg.Title,
		Heading:         cfg.Heading,
		Subheading:      cfg.Subheading,
		MetaDescription: cfg.Description,
		Keywords:        Keywords(cfg.Highlights),
		Highlights:      cfg.Highlights,
		HasResults:      data.HasResults,
		Summary:         execute("summary", data),
		Intro:           execute("intro", data),
		Stats:           stats,
		Breadcrumbs:     Breadcrumbs(cfg.Path, o.baseURL, f),
		FAQs:            cfg.FAQs,
		RelatedPages:    cfg.RelatedPages,
	}
	if gc.MetaDescription == "" {
		gc.MetaDescription = truncate(execute("meta", data), MaxMetaDescription)
	}
	if data.HasResults {
		gc.TopRegulators = TopRegulators(list, TopRegulatorCount)
		gc.KeyFacts = keyFacts(stats, gc.TopRegulators, f)
		gc.TopPicks = TopPicks(list, o.topPicks)
	}
	return gc
}

// execute runs a named template. The templates only read fields of
// templateData, so an error here is a programming mistake.
func execute(name string, data templateData) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("content: template %s: %v", name, err))
	}
	return strings.TrimSpace(buf.String())
}

func keyFacts(s model.Stats, regulators []string, f *Formatter) []string {
	facts := []string{
		fmt.Sprintf("%s of %s brokers are regulated", f.Count(s.RegulatedCount), f.Count(s.TotalBrokers)),
		fmt.Sprintf("Average EUR/USD spread: %s pips", f.Decimal(s.AvgSpread)),
		fmt.Sprintf("Minimum deposit from %s", f.USD(s.MinDeposit)),
		fmt.Sprintf("Average rating: %s/10", f.Decimal(s.AvgScore)),
	}
	if len(regulators) > 0 {
		facts = append(facts, "Top regulators: "+strings.Join(regulators, ", "))
	}
	return facts
}

// Keywords returns highlights followed by the generic SEO keywords,
// without duplicates (compared case-insensitively).
func Keywords(highlights []string) []string {
	seen := make(map[string]struct{}, len(highlights)+len(seoKeywords))
	out := make([]string, 0, len(highlights)+len(seoKeywords))
	for _, k := range append(append([]string{}, highlights...), seoKeywords...) {
		key := strings.ToLower(k)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Breadcrumbs returns Home followed by one crumb per path segment.
func Breadcrumbs(path, baseURL string, f *Formatter) []model.Breadcrumb {
	path, _, _ = strings.Cut(path, "?")
	crumbs := []model.Breadcrumb{{Name: "Home", URL: baseURL + "/"}}

	var current string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		current += "/" + seg
		crumbs = append(crumbs, model.Breadcrumb{
			Name: f.SegmentName(seg),
			URL:  baseURL + current,
		})
	}
	return crumbs
}

// TopPicks summarizes the first n brokers of list.
func TopPicks(list []model.Broker, n int) []model.BrokerSummary {
	n = min(n, len(list))
	out := make([]model.BrokerSummary, n)
	for i := range n {
		b := &list[i]
		out[i] = model.BrokerSummary{
			Rank:         i + 1,
			ID:           b.ID,
			Name:         b.Name,
			Score:        b.Score,
			MinDeposit:   b.Accessibility.MinDeposit,
			SpreadEURUSD: b.TradingConditions.Spreads.EURUSD,
			MaxLeverage:  b.TradingConditions.MaxLeverage,
			Regulators:   b.Regulation.Regulators,
		}
	}
	return out
}

// truncate cuts s to at most n characters at a word boundary and appends
// "..." when anything was removed.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n-3]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
