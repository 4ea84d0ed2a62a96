package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/nao1215/brokerseo/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/brokers.yaml
var defaultData []byte

// MaxScore is the upper bound of the broker rating scale.
const MaxScore = 10.0

// file is the on-disk layout of a catalog data file.
type file struct {
	Brokers []model.Broker `yaml:"brokers"`
}

// Catalog is an immutable, validated list of brokers in data file order.
type Catalog struct {
	brokers []model.Broker
	byID    map[string]int
	source  string
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultData, "embedded")
}

// LoadFile reads and validates a catalog from a YAML file.
// An empty path loads the embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-provided data path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates catalog YAML. source names the data origin
// in error messages and in Source.
func Parse(data []byte, source string) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}
	return New(f.Brokers, source)
}

// New validates brokers and builds a catalog from them. The slice is copied.
// Nil regulator and platform lists are normalised to empty slices.
func New(brokers []model.Broker, source string) (*Catalog, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyCatalog)
	}

	c := &Catalog{
		brokers: make([]model.Broker, len(brokers)),
		byID:    make(map[string]int, len(brokers)),
		source:  source,
	}
	for i, b := range brokers {
		if err := validate(&b); err != nil {
			return nil, fmt.Errorf("%s: broker #%d (%q): %w", source, i+1, b.ID, err)
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("%s: %w: %q", source, ErrDuplicateID, b.ID)
		}
		if b.Regulation.Regulators == nil {
			b.Regulation.Regulators = []string{}
		}
		if b.Technology.Platforms == nil {
			b.Technology.Platforms = []string{}
		}
		c.brokers[i] = b
		c.byID[b.ID] = i
	}
	return c, nil
}

func validate(b *model.Broker) error {
	if b.ID == "" {
		return ErrMissingID
	}
	if b.Score < 0 || b.Score > MaxScore {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, b.Score)
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"accessibility.minDeposit", b.Accessibility.MinDeposit},
		{"tradingConditions.spreads.eurusd", b.TradingConditions.Spreads.EURUSD},
		{"tradingConditions.spreads.gbpusd", b.TradingConditions.Spreads.GBPUSD},
		{"tradingConditions.spreads.usdjpy", b.TradingConditions.Spreads.USDJPY},
		{"tradableInstruments.forexPairs.total", float64(b.TradableInstruments.ForexPairs.Total)},
		{"tradableInstruments.cryptocurrencies.total", float64(b.TradableInstruments.Cryptocurrencies.Total)},
		{"tradableInstruments.stocks.total", float64(b.TradableInstruments.Stocks.Total)},
		{"tradableInstruments.indices.total", float64(b.TradableInstruments.Indices.Total)},
		{"tradableInstruments.commodities.total", float64(b.TradableInstruments.Commodities.Total)},
		{"foundingYear", float64(b.FoundingYear)},
	}
	for _, n := range numbers {
		if n.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeValue, n.field, n.value)
		}
	}
	return nil
}

// Brokers returns a copy of all brokers in catalog order.
func (c *Catalog) Brokers() []model.Broker {
	return slices.Clone(c.brokers)
}

// Get returns the broker with the given id.
func (c *Catalog) Get(id string) (model.Broker, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Broker{}, false
	}
	return c.brokers[i], true
}

// Len returns the number of brokers.
func (c *Catalog) Len() int {
	return len(c.brokers)
}

// IDs returns every broker id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.brokers))
	for i, b := range c.brokers {
		ids[i] = b.ID
	}
	return ids
}

// Source describes where the catalog was loaded from
// ("embedded" or a file path).
func (c *Catalog) Source() string {
	return c.source
}
