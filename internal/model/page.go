package model

import (
	"fmt"
	"strings"
)

// PageConfig describes one programmatically generated SEO landing page.
// Configurations are loaded once from the page registry and never mutated.
type PageConfig struct {
	// Path is the unique route of the page, e.g. "/brokers/metatrader4-mt4".
	Path string `yaml:"path" json:"path"`

	// Category groups pages for listings and sitemaps (deposit, platforms, ...).
	Category string `yaml:"category,omitempty" json:"category,omitempty"`

	// Title is the document title.
	Title string `yaml:"title" json:"title"`

	// Description is the editorial meta description. When empty, the content
	// generator derives one from the heading and highlights.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Heading is the main page heading.
	Heading string `yaml:"heading" json:"heading"`

	// Subheading is the lead paragraph under the heading.
	Subheading string `yaml:"subheading" json:"subheading"`

	// Filters selects which brokers appear on the page.
	Filters Filters `yaml:"filters" json:"filters"`

	// Highlights are short marketing phrases, in display order.
	Highlights []string `yaml:"highlights,omitempty" json:"highlights,omitempty"`

	// FAQs are the page's question/answer pairs, in display order.
	FAQs []FAQ `yaml:"faqs,omitempty" json:"faqs,omitempty"`

	// RelatedPages are cross-links shown at the bottom of the page.
	RelatedPages []RelatedPage `yaml:"relatedPages,omitempty" json:"relatedPages,omitempty"`

	// Priority is the sitemap priority between 0 and 1.
	Priority float64 `yaml:"priority,omitempty" json:"priority,omitempty"`

	// ChangeFreq is the sitemap change frequency.
	ChangeFreq ChangeFreq `yaml:"changefreq,omitempty" json:"changefreq,omitempty"`
}

// Slug returns the lower-cased last segment of the page path.
// "/brokers/MetaTrader4-MT4/" yields "metatrader4-mt4".
func (p *PageConfig) Slug() string {
	return SlugFromPath(p.Path)
}

// SlugFromPath returns the lower-cased last path segment of path,
// ignoring any query string and trailing slashes.
func SlugFromPath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}

// Filters is the structured predicate specification of a page.
// Every field is optional; an absent field imposes no constraint.
//
// Design decision: the deposit bounds and the leverage threshold are
// pointers so that an explicit zero ("maxDeposit: 0" for no-deposit pages)
// is distinguishable from "not set".
type Filters struct {
	// Regulators: broker must hold at least one of these licences.
	Regulators []string `yaml:"regulators,omitempty" json:"regulators,omitempty"`

	// Platforms: broker must offer at least one of these platforms.
	Platforms []string `yaml:"platforms,omitempty" json:"platforms,omitempty"`

	// AccountTypes: some account type name must contain one of these
	// strings, compared case-insensitively.
	AccountTypes []string `yaml:"accountTypes,omitempty" json:"accountTypes,omitempty"`

	// MinDeposit: broker minimum deposit must be at least this amount.
	MinDeposit *float64 `yaml:"minDeposit,omitempty" json:"minDeposit,omitempty"`

	// MaxDeposit: broker minimum deposit must be at most this amount.
	MaxDeposit *float64 `yaml:"maxDeposit,omitempty" json:"maxDeposit,omitempty"`

	// Leverage: broker maximum leverage must be at least 1:Leverage.
	Leverage *int `yaml:"leverage,omitempty" json:"leverage,omitempty"`

	// Features: broker must satisfy every listed feature.
	Features []Feature `yaml:"features,omitempty" json:"features,omitempty"`

	// Specialties: broker must offer at least one listed asset class.
	Specialties []Specialty `yaml:"specialties,omitempty" json:"specialties,omitempty"`

	// Regions: broker must satisfy at least one listed region rule.
	Regions []Region `yaml:"regions,omitempty" json:"regions,omitempty"`
}

// IsEmpty reports whether no filter dimension is set.
func (f *Filters) IsEmpty() bool {
	return len(f.Regulators) == 0 &&
		len(f.Platforms) == 0 &&
		len(f.AccountTypes) == 0 &&
		f.MinDeposit == nil &&
		f.MaxDeposit == nil &&
		f.Leverage == nil &&
		len(f.Features) == 0 &&
		len(f.Specialties) == 0 &&
		len(f.Regions) == 0
}

// FAQ is a question/answer pair. Answers may contain inline HTML.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// RelatedPage is a cross-link to another page.
type RelatedPage struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// ChangeFreq is the sitemap change frequency of a page.
type ChangeFreq string

// Supported change frequencies.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// UnmarshalText implements encoding.TextUnmarshaler.
// The empty string is accepted and means "use the sitemap default".
func (c *ChangeFreq) UnmarshalText(text []byte) error {
	switch v := ChangeFreq(strings.ToLower(string(text))); v {
	case "", ChangeFreqDaily, ChangeFreqWeekly, ChangeFreqMonthly:
		*c = v
		return nil
	default:
		return fmt.Errorf("%w: changefreq %q", ErrUnknownValue, string(text))
	}
}

// Float64 returns a pointer to v. It is a convenience for building Filters
// literals in code and tests.
func Float64(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
