package server

import (
	"fmt"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/registry"
	"github.com/nao1215/brokerseo/internal/search"
)

// Snapshot is the immutable data set served by the API.
type Snapshot struct {
	Catalog  *catalog.Catalog
	Registry *registry.Registry
	Search   *search.Index
}

// NewSnapshot builds a snapshot and its search index.
func NewSnapshot(c *catalog.Catalog, r *registry.Registry) (*Snapshot, error) {
	idx, err := search.NewIndex(c.Brokers())
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}
	return &Snapshot{Catalog: c, Registry: r, Search: idx}, nil
}

// LoadSnapshot reads the catalog and page files and builds a snapshot.
// Empty paths load the embedded data.
func LoadSnapshot(catalogPath, pagesPath string) (*Snapshot, error) {
	c, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	r, err := registry.LoadFile(pagesPath)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(c, r)
}

// Close releases the search index.
func (s *Snapshot) Close() error {
	if s.Search == nil {
		return nil
	}
	return s.Search.Close()
}
