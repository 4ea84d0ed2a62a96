package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/report"
)

// DefaultLimit is the number of hits returned when no limit is given.
const DefaultLimit = 10

// ErrEmptyQuery is returned when the query has no searchable text.
var ErrEmptyQuery = errors.New("empty search query")

// Field boosts. Exact ids and name prefixes dominate.
const (
	boostID          = 10.0
	boostNamePrefix  = 5.0
	boostName        = 3.0
	boostNameFuzzy   = 1.5
	boostRegulator   = 2.0
	boostPlatform    = 2.0
	boostHQ          = 1.0
	boostDescription = 0.5
)

// Result is one search hit.
type Result struct {
	Broker model.Broker `json:"broker"`

	// Relevance is the bleve score of the hit.
	Relevance float64 `json:"relevance"`
}

// Index is an in-memory full-text index of brokers.
// It is safe for concurrent searches.
type Index struct {
	index   bleve.Index
	brokers map[string]model.Broker
}

// NewIndex builds an index over brokers.
func NewIndex(brokers []model.Broker) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	byID := make(map[string]model.Broker, len(brokers))
	batch := idx.NewBatch()
	for _, b := range brokers {
		byID[b.ID] = b
		if err := batch.Index(b.ID, document(&b)); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to add %s to batch: %w", b.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}

	return &Index{index: idx, brokers: byID}, nil
}

// buildIndexMapping maps the broker document fields.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	brokerMapping := bleve.NewDocumentMapping()

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	brokerMapping.AddFieldMappingsAt("id", idField)

	text := bleve.NewTextFieldMapping()
	for _, name := range []string{"name", "description", "regulators", "platforms", "headquarters", "accountTypes"} {
		brokerMapping.AddFieldMappingsAt(name, text)
	}

	score := bleve.NewNumericFieldMapping()
	brokerMapping.AddFieldMappingsAt("score", score)

	indexMapping.DefaultMapping = brokerMapping
	return indexMapping
}

// document flattens a broker into the indexed fields.
func document(b *model.Broker) map[string]any {
	accounts := make([]string, 0, len(b.AccountTypes))
	for _, a := range b.AccountTypes {
		accounts = append(accounts, strings.TrimSpace(a.Name+" "+a.Type))
	}
	return map[string]any{
		"id":           b.ID,
		"name":         b.Name,
		"description":  report.StripHTML(b.Description),
		"regulators":   strings.Join(b.Regulation.Regulators, " "),
		"platforms":    strings.Join(b.Technology.Platforms, " "),
		"headquarters": b.Headquarters,
		"accountTypes": strings.Join(accounts, " "),
		"score":        b.Score,
	}
}

// Search returns up to limit brokers matching query, most relevant first.
// Hits with equal relevance are ordered by id. limit <= 0 uses DefaultLimit.
func (i *Index) Search(query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	lower := strings.ToLower(query)

	exact := bleve.NewTermQuery(lower)
	exact.SetField("id")
	exact.SetBoost(boostID)

	prefix := bleve.NewPrefixQuery(lower)
	prefix.SetField("name")
	prefix.SetBoost(boostNamePrefix)

	name := bleve.NewMatchQuery(query)
	name.SetField("name")
	name.SetBoost(boostName)

	fuzzy := bleve.NewMatchQuery(query)
	fuzzy.SetField("name")
	fuzzy.SetFuzziness(1)
	fuzzy.SetBoost(boostNameFuzzy)

	regulators := bleve.NewMatchQuery(query)
	regulators.SetField("regulators")
	regulators.SetBoost(boostRegulator)

	platforms := bleve.NewMatchQuery(query)
	platforms.SetField("platforms")
	platforms.SetBoost(boostPlatform)

	hq := bleve.NewMatchQuery(query)
	hq.SetField("headquarters")
	hq.SetBoost(boostHQ)

	desc := bleve.NewMatchQuery(query)
	desc.SetField("description")
	desc.SetBoost(boostDescription)

	accounts := bleve.NewMatchQuery(query)
	accounts.SetField("accountTypes")
	accounts.SetBoost(boostDescription)

	req := bleve.NewSearchRequestOptions(
		bleve.NewDisjunctionQuery(exact, prefix, name, fuzzy, regulators, platforms, hq, desc, accounts),
		limit, 0, false,
	)
	req.SortBy([]string{"-_score", "_id"})

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		b, ok := i.brokers[hit.ID]
		if !ok {
			continue
		}
		out = append(out, Result{Broker: b, Relevance: hit.Score})
	}
	return out, nil
}

// Len returns the number of indexed brokers.
func (i *Index) Len() int {
	return len(i.brokers)
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}
