package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/brokerseo/internal/model"
)

// SitemapNamespace is the sitemaps.org schema namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Defaults applied to pages that leave the sitemap fields empty.
const (
	DefaultPriority   = 0.8
	DefaultChangeFreq = model.ChangeFreqWeekly
)

// URLSet is the root element of a sitemap.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// NewURLSet builds a sitemap for pages under baseURL. A zero lastMod
// omits the lastmod element.
func NewURLSet(pages []model.PageConfig, baseURL string, lastMod time.Time) *URLSet {
	baseURL = strings.TrimRight(baseURL, "/")
	set := &URLSet{
		Xmlns: SitemapNamespace,
		URLs:  make([]SitemapURL, 0, len(pages)),
	}

	var mod string
	if !lastMod.IsZero() {
		mod = lastMod.UTC().Format("2006-01-02")
	}

	for _, p := range pages {
		freq := p.ChangeFreq
		if freq == "" {
			freq = DefaultChangeFreq
		}
		priority := p.Priority
		if priority == 0 {
			priority = DefaultPriority
		}
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        baseURL + p.Path,
			LastMod:    mod,
			ChangeFreq: string(freq),
			Priority:   fmt.Sprintf("%.1f", priority),
		})
	}
	return set
}

// WriteSitemap writes the XML sitemap for pages to w.
//
// Design decision: encoding/xml is used directly. The sitemap schema is four
// flat elements and no library in our stack targets it.
func WriteSitemap(w io.Writer, pages []model.PageConfig, baseURL string, lastMod time.Time) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(NewURLSet(pages, baseURL, lastMod)); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
