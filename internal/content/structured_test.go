package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/brokerseo/internal/model"
)

// TestStructuredData tests the JSON-LD documents for a page.
func TestStructuredData(t *testing.T) {
	t.Parallel()

	cfg := model.PageConfig{
		Path:  "/brokers/test",
		Title: "Test Brokers",
		FAQs:  []model.FAQ{{Question: "Is it safe?", Answer: "Yes."}},
	}
	brokers := sampleBrokers()
	r := model.NewPageResult(cfg, model.DefaultSortSpec())
	r.Brokers = brokers
	r.Content = GeneratePageContent(cfg, brokers, WithBaseURL("https://example.com"))

	docs := StructuredData(r, "https://example.com")
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	list, ok := docs[0].(ItemList)
	if !ok {
		t.Fatalf("first document is %T, expected ItemList", docs[0])
	}
	if list.NumberOfItems != 3 || len(list.ItemListElement) != 3 {
		t.Errorf("unexpected item list size: %d/%d", list.NumberOfItems, len(list.ItemListElement))
	}
	product, ok := list.ItemListElement[0].Item.(FinancialProduct)
	if !ok || product.URL != "https://example.com/broker/pepperstone" {
		t.Errorf("unexpected first item: %+v", list.ItemListElement[0].Item)
	}
	if product.AggregateRating == nil || product.AggregateRating.BestRating != 10 {
		t.Errorf("unexpected rating: %+v", product.AggregateRating)
	}

	if _, ok := docs[1].(FAQPage); !ok {
		t.Errorf("second document is %T, expected FAQPage", docs[1])
	}
	crumbs, ok := docs[2].(BreadcrumbList)
	if !ok || len(crumbs.ItemListElement) != 3 {
		t.Errorf("unexpected breadcrumbs: %+v", docs[2])
	}

	data, err := MarshalStructuredData(docs)
	if err != nil {
		t.Fatalf("MarshalStructuredData() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded[0]["@type"] != "ItemList" || !strings.Contains(string(data), `"@context": "https://schema.org"`) {
		t.Errorf("unexpected JSON-LD output:\n%s", data)
	}
}

// TestStructuredDataNoResults tests that the ItemList is omitted for empty pages.
func TestStructuredDataNoResults(t *testing.T) {
	t.Parallel()

	cfg := model.PageConfig{Path: "/brokers/empty", Title: "Empty"}
	r := model.NewPageResult(cfg, model.DefaultSortSpec())
	r.Content = GeneratePageContent(cfg, nil)

	docs := StructuredData(r, "")
	if len(docs) != 1 {
		t.Fatalf("expected only the breadcrumb list, got %d documents", len(docs))
	}
	if _, ok := docs[0].(BreadcrumbList); !ok {
		t.Errorf("document is %T, expected BreadcrumbList", docs[0])
	}
}

// TestFingerprint tests that equal content hashes equally and changes are detected.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	cfg := model.PageConfig{Path: "/brokers/test", Title: "Test"}
	a := GeneratePageContent(cfg, sampleBrokers())
	b := GeneratePageContent(cfg, sampleBrokers())
	c := GeneratePageContent(cfg, sampleBrokers()[:2])

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	fb, _ := Fingerprint(b)
	fc, _ := Fingerprint(c)

	if len(fa) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(fa))
	}
	if fa != fb {
		t.Error("identical content produced different fingerprints")
	}
	if fa == fc {
		t.Error("different content produced the same fingerprint")
	}
}
