package model

import (
	"errors"
	"testing"
)

// TestSlugFromPath tests slug extraction from route paths.
func TestSlugFromPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		expected string
	}{
		{"/brokers/metatrader4-mt4", "metatrader4-mt4"},
		{"/brokers/MetaTrader4-MT4/", "metatrader4-mt4"},
		{"/brokers/ecn-brokers?sort=name", "ecn-brokers"},
		{"/scalping", "scalping"},
		{"scalping", "scalping"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			if got := SlugFromPath(tc.path); got != tc.expected {
				t.Errorf("SlugFromPath(%q) = %q, expected %q", tc.path, got, tc.expected)
			}
		})
	}

	cfg := PageConfig{Path: "/brokers/uk-fca-regulated"}
	if cfg.Slug() != "uk-fca-regulated" {
		t.Errorf("Slug() = %q", cfg.Slug())
	}
}

// TestChangeFreqUnmarshal tests validation of sitemap change frequencies.
func TestChangeFreqUnmarshal(t *testing.T) {
	t.Parallel()

	var c ChangeFreq
	if err := c.UnmarshalText([]byte("Weekly")); err != nil || c != ChangeFreqWeekly {
		t.Errorf("UnmarshalText(Weekly) = (%q, %v)", c, err)
	}
	if err := c.UnmarshalText([]byte("hourly")); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("expected ErrUnknownValue for hourly, got %v", err)
	}
}

// TestNewPageResult tests the initial state of a page result.
func TestNewPageResult(t *testing.T) {
	t.Parallel()

	r := NewPageResult(PageConfig{Path: "/brokers/x"}, DefaultSortSpec())
	if r.Brokers == nil || len(r.Brokers) != 0 {
		t.Error("expected empty non-nil broker list")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
	if r.Stats().TotalBrokers != 0 {
		t.Error("expected zero stats")
	}
}
