package model

// Stats holds aggregate figures for a filtered broker list.
// For an empty list every field is zero; renderers treat TotalBrokers == 0
// as "no results", not as an error.
type Stats struct {
	// TotalBrokers is the number of brokers in the list.
	TotalBrokers int `json:"totalBrokers"`

	// RegulatedCount is the number of brokers with at least one regulator.
	RegulatedCount int `json:"regulatedCount"`

	// AvgSpread is the mean EUR/USD spread, rounded to one decimal place.
	AvgSpread float64 `json:"avgSpread"`

	// MinDeposit is the smallest minimum deposit in the list.
	MinDeposit float64 `json:"minDeposit"`

	// AvgScore is the mean score, rounded to one decimal place.
	AvgScore float64 `json:"avgScore"`
}

// Breadcrumb is one entry of a page's breadcrumb trail.
type Breadcrumb struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BrokerSummary is the compact broker view used for "top picks".
type BrokerSummary struct {
	Rank         int      `json:"rank"`
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Score        float64  `json:"score"`
	MinDeposit   float64  `json:"minDeposit"`
	SpreadEURUSD float64  `json:"spreadEurusd"`
	MaxLeverage  string   `json:"maxLeverage"`
	Regulators   []string `json:"regulators"`
}

// GeneratedContent is the templated text derived from a page
// configuration and its filtered broker list.
type GeneratedContent struct {
	Path         string `json:"path"`
	CanonicalURL string `json:"canonicalUrl"`
	Title        string `json:"title"`
	Heading      string `json:"heading"`
	Subheading   string `json:"subheading"`

	// MetaDescription is the configured description, or a derived one.
	MetaDescription string `json:"metaDescription"`

	// Keywords are the highlights followed by generic SEO keywords.
	Keywords []string `json:"keywords"`

	Highlights []string `json:"highlights,omitempty"`

	// HasResults is false when no broker matched the page filters.
	HasResults bool `json:"hasResults"`

	// Summary is the one-line result summary,
	// e.g. "12 brokers found, averaging 8.4/10".
	Summary string `json:"summary"`

	// Intro is the narrative paragraph shown above the broker list.
	Intro string `json:"intro"`

	// KeyFacts are short statistic sentences shown as a list.
	KeyFacts []string `json:"keyFacts,omitempty"`

	// TopRegulators are the first three distinct regulators in list order.
	TopRegulators []string `json:"topRegulators,omitempty"`

	// TopPicks are the first brokers of the sorted list.
	TopPicks []BrokerSummary `json:"topPicks,omitempty"`

	Stats        Stats         `json:"stats"`
	Breadcrumbs  []Breadcrumb  `json:"breadcrumbs"`
	FAQs         []FAQ         `json:"faqs,omitempty"`
	RelatedPages []RelatedPage `json:"relatedPages,omitempty"`
}
