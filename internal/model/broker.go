package model

import "slices"

// Broker represents one forex broker's profile in the catalog.
// Brokers are loaded once from static data and never mutated afterwards.
//
// Numeric fields that are absent in the source data decode to their zero
// value. Sorting and statistics treat such values as 0, so an unknown spread
// ranks as the tightest spread and an unknown deposit as the smallest one.
type Broker struct {
	// ID is the unique catalog identifier (e.g. "pepperstone").
	ID string `yaml:"id" json:"id"`

	// Name is the display name of the broker.
	Name string `yaml:"name" json:"name"`

	// Score is the overall rating on a 0-10 scale.
	Score float64 `yaml:"score" json:"score"`

	// Description is a short editorial summary. It may contain inline HTML.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Headquarters is the city/country of the head office.
	Headquarters string `yaml:"headquarters,omitempty" json:"headquarters,omitempty"`

	// FoundingYear is the year the broker was founded.
	FoundingYear int `yaml:"foundingYear,omitempty" json:"foundingYear,omitempty"`

	// WebsiteURL is the broker's public website.
	WebsiteURL string `yaml:"websiteUrl,omitempty" json:"websiteUrl,omitempty"`

	Regulation          Regulation          `yaml:"regulation" json:"regulation"`
	TradingConditions   TradingConditions   `yaml:"tradingConditions" json:"tradingConditions"`
	Accessibility       Accessibility       `yaml:"accessibility" json:"accessibility"`
	Technology          Technology          `yaml:"technology" json:"technology"`
	AccountTypes        []AccountType       `yaml:"accountTypes,omitempty" json:"accountTypes,omitempty"`
	PlatformFeatures    PlatformFeatures    `yaml:"platformFeatures" json:"platformFeatures"`
	AccountManagement   AccountManagement   `yaml:"accountManagement" json:"accountManagement"`
	TradableInstruments TradableInstruments `yaml:"tradableInstruments" json:"tradableInstruments"`

	// CopyTrading is the legacy top-level copy trading flag.
	CopyTrading bool `yaml:"copyTrading,omitempty" json:"copyTrading,omitempty"`

	// IsIslamic is the legacy top-level swap-free account flag.
	IsIslamic bool `yaml:"isIslamic,omitempty" json:"isIslamic,omitempty"`

	// ProvidesSignals reports whether the broker offers trading signals.
	ProvidesSignals bool `yaml:"providesSignals,omitempty" json:"providesSignals,omitempty"`
}

// Regulation lists the financial authorities supervising a broker.
type Regulation struct {
	// Regulators holds regulator codes such as "FCA" or "ASIC".
	// An empty list means the broker is unregulated.
	Regulators []string `yaml:"regulators" json:"regulators"`
}

// Spreads holds typical spreads in pips for the major pairs.
type Spreads struct {
	EURUSD float64 `yaml:"eurusd" json:"eurusd"`
	GBPUSD float64 `yaml:"gbpusd,omitempty" json:"gbpusd,omitempty"`
	USDJPY float64 `yaml:"usdjpy,omitempty" json:"usdjpy,omitempty"`
}

// TradingConditions describes pricing and leverage.
type TradingConditions struct {
	Spreads Spreads `yaml:"spreads" json:"spreads"`

	// MaxLeverage is the maximum leverage ratio, e.g. "1:500".
	MaxLeverage string `yaml:"maxLeverage" json:"maxLeverage"`

	// Commission is a free-form commission description.
	Commission string `yaml:"commission,omitempty" json:"commission,omitempty"`
}

// Accessibility describes how easy it is to open an account.
type Accessibility struct {
	// MinDeposit is the minimum initial deposit in USD.
	MinDeposit float64 `yaml:"minDeposit" json:"minDeposit"`
}

// Technology describes the trading platforms and execution model.
type Technology struct {
	Platforms     []string `yaml:"platforms" json:"platforms"`
	ExecutionType string   `yaml:"executionType" json:"executionType"`
}

// AccountType is one account offering. Name is the marketing name
// ("Razor Account"); Type is the account class ("ECN", "Islamic") that
// page filters match against.
type AccountType struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Type string `yaml:"type" json:"type"`
}

// Capability is a nested availability flag.
type Capability struct {
	Available bool `yaml:"available" json:"available"`
}

// PlatformFeatures holds platform-level capabilities.
type PlatformFeatures struct {
	CopyTrading Capability `yaml:"copyTrading" json:"copyTrading"`
}

// AccountManagement holds account-level capabilities.
type AccountManagement struct {
	IslamicAccount Capability `yaml:"islamicAccount" json:"islamicAccount"`
}

// InstrumentCount is the number of tradable instruments in a class.
type InstrumentCount struct {
	Total int `yaml:"total" json:"total"`
}

// TradableInstruments counts instruments per asset class.
type TradableInstruments struct {
	ForexPairs       InstrumentCount `yaml:"forexPairs" json:"forexPairs"`
	Cryptocurrencies InstrumentCount `yaml:"cryptocurrencies" json:"cryptocurrencies"`
	Stocks           InstrumentCount `yaml:"stocks" json:"stocks"`
	Indices          InstrumentCount `yaml:"indices" json:"indices"`
	Commodities      InstrumentCount `yaml:"commodities" json:"commodities"`
}

// IsRegulated reports whether the broker has at least one regulator.
func (b *Broker) IsRegulated() bool {
	return len(b.Regulation.Regulators) > 0
}

// HasRegulator reports whether code is one of the broker's regulators.
// Regulator codes are compared exactly, as they are in the catalog.
func (b *Broker) HasRegulator(code string) bool {
	return slices.Contains(b.Regulation.Regulators, code)
}

// HasPlatform reports whether the broker offers the named platform.
func (b *Broker) HasPlatform(platform string) bool {
	return slices.Contains(b.Technology.Platforms, platform)
}

// Leverage returns the parsed maximum leverage of the broker.
// ok is false when the leverage string does not follow the "1:<N>" form.
func (b *Broker) Leverage() (n int, ok bool) {
	return ParseLeverage(b.TradingConditions.MaxLeverage)
}
