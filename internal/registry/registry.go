package registry

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nao1215/brokerseo/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/pages.yaml
var defaultData []byte

// Page categories in display order.
const (
	CategoryDeposit    = "deposit"
	CategoryPlatforms  = "platforms"
	CategoryFeatures   = "features"
	CategoryRegional   = "regional"
	CategoryTrading    = "trading"
	CategoryCommission = "commission"
	CategoryLeverage   = "leverage"
	CategoryAssets     = "assets"
	CategoryAdditional = "additional"
)

// AllCategories returns every known category in display order.
func AllCategories() []string {
	return []string{
		CategoryDeposit, CategoryPlatforms, CategoryFeatures, CategoryRegional,
		CategoryTrading, CategoryCommission, CategoryLeverage, CategoryAssets,
		CategoryAdditional,
	}
}

type file struct {
	Pages []model.PageConfig `yaml:"pages"`
}

// Registry is an immutable set of page configurations in declaration order.
type Registry struct {
	pages  []model.PageConfig
	bySlug map[string]int
	source string
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Parse(defaultData, "embedded")
}

// LoadFile reads a registry from a YAML file. An empty path loads the
// embedded registry.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-provided data path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read pages %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates registry YAML.
// Unknown feature, specialty or region names fail the parse.
func Parse(data []byte, source string) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pages %s: %w", source, err)
	}
	return New(f.Pages, source)
}

// New validates pages and builds a registry. Pages without a category are
// filed under CategoryAdditional.
func New(pages []model.PageConfig, source string) (*Registry, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyRegistry)
	}

	r := &Registry{
		pages:  make([]model.PageConfig, len(pages)),
		bySlug: make(map[string]int, len(pages)),
		source: source,
	}
	paths := make(map[string]struct{}, len(pages))

	for i, p := range pages {
		if p.Category == "" {
			p.Category = CategoryAdditional
		}
		if err := validate(&p); err != nil {
			return nil, fmt.Errorf("%s: page %q: %w", source, p.Path, err)
		}
		if _, dup := paths[p.Path]; dup {
			return nil, fmt.Errorf("%s: %w: %s", source, ErrDuplicatePath, p.Path)
		}
		paths[p.Path] = struct{}{}

		slug := p.Slug()
		if j, dup := r.bySlug[slug]; dup {
			return nil, fmt.Errorf("%s: %w: %q used by %s and %s", source, ErrDuplicateSlug, slug, r.pages[j].Path, p.Path)
		}
		r.pages[i] = p
		r.bySlug[slug] = i
	}
	return r, nil
}

func validate(p *model.PageConfig) error {
	if strings.TrimSpace(p.Path) == "" || p.Slug() == "" {
		return ErrMissingPath
	}
	if p.Title == "" || p.Heading == "" {
		return ErrMissingTitle
	}
	if !slices.Contains(AllCategories(), p.Category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	if p.Priority < 0 || p.Priority > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidPriority, p.Priority)
	}

	f := p.Filters
	if (f.MinDeposit != nil && *f.MinDeposit < 0) || (f.MaxDeposit != nil && *f.MaxDeposit < 0) {
		return fmt.Errorf("%w: negative bound", ErrInvalidDepositRange)
	}
	if f.MinDeposit != nil && f.MaxDeposit != nil && *f.MinDeposit > *f.MaxDeposit {
		return fmt.Errorf("%w: minDeposit %v > maxDeposit %v", ErrInvalidDepositRange, *f.MinDeposit, *f.MaxDeposit)
	}
	return nil
}

// Lookup finds a page by slug or path. The query string, trailing slashes
// and case are ignored, and only the last path segment is compared.
func (r *Registry) Lookup(slugOrPath string) (model.PageConfig, error) {
	slug := model.SlugFromPath(slugOrPath)
	if slug == "" {
		return model.PageConfig{}, fmt.Errorf("%w: empty slug", ErrPageNotFound)
	}
	i, ok := r.bySlug[slug]
	if !ok {
		return model.PageConfig{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return r.pages[i], nil
}

// Pages returns a copy of every page in declaration order.
func (r *Registry) Pages() []model.PageConfig {
	return slices.Clone(r.pages)
}

// Len returns the number of pages.
func (r *Registry) Len() int {
	return len(r.pages)
}

// Categories returns the categories that have at least one page,
// in display order.
func (r *Registry) Categories() []string {
	var out []string
	for _, c := range AllCategories() {
		if slices.ContainsFunc(r.pages, func(p model.PageConfig) bool { return p.Category == c }) {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory returns the pages of one category in declaration order.
// The category is compared case-insensitively.
func (r *Registry) ByCategory(category string) []model.PageConfig {
	var out []model.PageConfig
	for _, p := range r.pages {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Source describes where the registry was loaded from.
func (r *Registry) Source() string {
	return r.source
}
