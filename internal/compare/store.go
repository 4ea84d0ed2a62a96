package compare

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nao1215/brokerseo/internal/model"
)

// Store is the comparison selection state container.
// It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	ids       Selection
	persister Persister
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store and loads the persisted selection.
// Load problems never fail construction; see Reload.
func NewStore(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		ids:       Selection{},
		persister: p,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload(ctx)
	return s
}

// Reload replaces the in-memory selection with the persisted one.
// Read errors and corrupt data are logged and yield an empty selection.
func (s *Store) Reload(ctx context.Context) {
	sel, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load comparison selection, starting empty", "error", err)
		sel = Selection{}
	}
	clean, changed := Sanitize(sel)
	if changed {
		s.logger.Warn("repaired stored comparison selection", "stored", len(sel), "kept", len(clean))
	}

	s.mu.Lock()
	s.ids = clean
	s.mu.Unlock()
}

// Add appends b to the selection unless it is full or b is already there.
// The returned Notice describes the outcome. The error is non-nil only if
// saving failed; the in-memory selection keeps the change in that case.
func (s *Store) Add(ctx context.Context, b model.Broker) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids.Contains(b.ID) {
		return duplicateNotice(displayName(b)), nil
	}
	if len(s.ids) >= MaxSelection {
		return fullNotice(), nil
	}
	s.ids = append(s.ids, b.ID)
	return addedNotice(displayName(b)), s.save(ctx)
}

// Remove deletes id from the selection. Removing an id that is not
// selected is a no-op and does not write.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.ids, id)
	if i < 0 {
		return nil
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return s.save(ctx)
}

// Clear empties the selection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = Selection{}
	return s.save(ctx)
}

// IsSelected reports whether id is in the selection.
func (s *Store) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Contains(id)
}

// IDs returns a copy of the selection.
func (s *Store) IDs() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Len returns the number of selected brokers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Full reports whether the selection holds MaxSelection brokers.
func (s *Store) Full() bool {
	return s.Len() >= MaxSelection
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) error {
	if err := s.persister.Save(ctx, slices.Clone(s.ids)); err != nil {
		return fmt.Errorf("failed to save comparison selection: %w", err)
	}
	return nil
}

func displayName(b model.Broker) string {
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
