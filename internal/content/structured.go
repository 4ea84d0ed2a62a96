package content

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/brokerseo/internal/model"
)

const (
	schemaContext = "https://schema.org"

	// MaxListItems is the number of brokers included in the ItemList document.
	MaxListItems = 10
)

// ListItem is a schema.org ListItem. Item holds either a URL string or a
// nested document.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Item     any    `json:"item,omitempty"`
}

// ItemList is a schema.org ItemList of brokers.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// FinancialProduct describes one broker inside an ItemList.
type FinancialProduct struct {
	Type            string           `json:"@type"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	URL             string           `json:"url"`
	Provider        Organization     `json:"provider"`
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
}

// Organization is a schema.org Organization.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// AggregateRating is a schema.org AggregateRating on the 0-10 scale.
type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	BestRating  float64 `json:"bestRating"`
	WorstRating float64 `json:"worstRating"`
}

// FAQPage is a schema.org FAQPage.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// Question is a schema.org Question with its accepted answer.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer is a schema.org Answer.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// BreadcrumbList is a schema.org BreadcrumbList.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// StructuredData returns the JSON-LD documents for a rendered page:
// an ItemList when brokers matched, a FAQPage when the page has FAQs, and
// always a BreadcrumbList.
func StructuredData(r *model.PageResult, baseURL string) []any {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var docs []any

	if len(r.Brokers) > 0 {
		docs = append(docs, brokerList(r, baseURL))
	}
	if len(r.Config.FAQs) > 0 {
		page := FAQPage{Context: schemaContext, Type: "FAQPage"}
		for _, faq := range r.Config.FAQs {
			page.MainEntity = append(page.MainEntity, Question{
				Type:           "Question",
				Name:           faq.Question,
				AcceptedAnswer: Answer{Type: "Answer", Text: faq.Answer},
			})
		}
		docs = append(docs, page)
	}

	crumbs := BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList"}
	for i, c := range r.Content.Breadcrumbs {
		crumbs.ItemListElement = append(crumbs.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     c.URL,
		})
	}
	docs = append(docs, crumbs)
	return docs
}

func brokerList(r *model.PageResult, baseURL string) ItemList {
	list := ItemList{
		Context:       schemaContext,
		Type:          "ItemList",
		Name:          r.Config.Title,
		Description:   r.Content.MetaDescription,
		NumberOfItems: len(r.Brokers),
	}
	if list.Description == "" {
		list.Description = fmt.Sprintf("A curated list of %d forex brokers", len(r.Brokers))
	}

	for i, b := range r.Brokers[:min(len(r.Brokers), MaxListItems)] {
		page := baseURL + "/broker/" + b.ID
		site := b.WebsiteURL
		if site == "" {
			site = page
		}
		product := FinancialProduct{
			Type:        "FinancialProduct",
			Name:        b.Name,
			Description: b.Description,
			URL:         page,
			Provider:    Organization{Type: "Organization", Name: b.Name, URL: site},
		}
		if b.Score > 0 {
			product.AggregateRating = &AggregateRating{
				Type:        "AggregateRating",
				RatingValue: b.Score,
				BestRating:  10,
				WorstRating: 0,
			}
		}
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Item:     product,
		})
	}
	return list
}

// MarshalStructuredData encodes docs as an indented JSON array suitable for
// a <script type="application/ld+json"> element.
func MarshalStructuredData(docs []any) ([]byte, error) {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured data: %w", err)
	}
	return data, nil
}
