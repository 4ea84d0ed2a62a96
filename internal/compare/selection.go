package compare

import (
	"errors"
	"slices"

	"github.com/nao1215/brokerseo/internal/model"
)

const (
	// MaxSelection is the maximum number of brokers compared at once.
	MaxSelection = 4

	// StorageKey is the key the selection is stored under.
	StorageKey = "broker_comparison"
)

// ErrCorruptSelection is returned by persisters when the stored value is
// not a JSON array of strings.
var ErrCorruptSelection = errors.New("stored comparison selection is corrupt")

// Selection is an ordered list of broker ids.
type Selection []string

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	return slices.Contains(s, id)
}

// Sanitize returns s without empty ids or duplicates, truncated to
// MaxSelection entries. changed reports whether anything was removed.
// The result is never nil.
func Sanitize(s Selection) (clean Selection, changed bool) {
	clean = make(Selection, 0, min(len(s), MaxSelection))
	for _, id := range s {
		if id == "" || clean.Contains(id) {
			changed = true
			continue
		}
		if len(clean) == MaxSelection {
			changed = true
			break
		}
		clean = append(clean, id)
	}
	return clean, changed
}

// BrokerSource looks up brokers by id. *catalog.Catalog implements it.
type BrokerSource interface {
	Get(id string) (model.Broker, bool)
}

// Resolve maps the selection to brokers in selection order. Ids that are
// no longer in the catalog are returned in missing.
func Resolve(sel Selection, src BrokerSource) (brokers []model.Broker, missing []string) {
	brokers = make([]model.Broker, 0, len(sel))
	for _, id := range sel {
		b, ok := src.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		brokers = append(brokers, b)
	}
	return brokers, missing
}
