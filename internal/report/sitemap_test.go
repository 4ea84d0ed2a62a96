package report

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/brokerseo/internal/model"
)

func TestWriteSitemap(t *testing.T) {
	t.Parallel()

	pages := []model.PageConfig{
		{Path: "/brokers/no-minimum-deposit", Priority: 0.9, ChangeFreq: model.ChangeFreqDaily},
		{Path: "/brokers/ecn-brokers"},
	}
	lastMod := time.Date(2026, 5, 6, 23, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteSitemap(&buf, pages, "https://example.com/", lastMod); err != nil {
		t.Fatalf("WriteSitemap() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<?xml") {
		t.Error("missing XML header")
	}

	var got URLSet
	if err := xml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	want := []SitemapURL{
		{Loc: "https://example.com/brokers/no-minimum-deposit", LastMod: "2026-05-06", ChangeFreq: "daily", Priority: "0.9"},
		{Loc: "https://example.com/brokers/ecn-brokers", LastMod: "2026-05-06", ChangeFreq: "weekly", Priority: "0.8"},
	}
	if diff := cmp.Diff(want, got.URLs); diff != "" {
		t.Errorf("urls mismatch (-want +got):\n%s", diff)
	}
}

func TestNewURLSetWithoutLastMod(t *testing.T) {
	t.Parallel()

	set := NewURLSet([]model.PageConfig{{Path: "/brokers/x"}}, "https://example.com", time.Time{})
	if set.URLs[0].LastMod != "" {
		t.Errorf("LastMod = %q, want empty", set.URLs[0].LastMod)
	}
	if set.Xmlns != SitemapNamespace {
		t.Errorf("Xmlns = %q", set.Xmlns)
	}
}
