package compare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/brokerseo/internal/model"
)

// TestFilePersister tests the JSON file backend.
func TestFilePersister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "selection.json")
	p := NewFilePersister(path)

	sel, err := p.Load(ctx)
	if err != nil || len(sel) != 0 {
		t.Fatalf("Load() on missing file = (%v, %v)", sel, err)
	}

	if err := p.Save(ctx, Selection{"xtb", "pepperstone"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["xtb","pepperstone"]` {
		t.Errorf("file content = %s", data)
	}

	sel, err = p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Selection{"xtb", "pepperstone"}, sel); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(ctx); !errors.Is(err, ErrCorruptSelection) {
		t.Errorf("expected ErrCorruptSelection, got %v", err)
	}
}

// TestSaveNilEncodesEmptyArray tests the encoding of an empty selection.
func TestSaveNilEncodesEmptyArray(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := NewMemoryStorage()
	p := NewStoragePersister(storage, "k")
	if err := p.Save(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := storage.GetItem(ctx, "k"); v != "[]" {
		t.Errorf("stored %q, expected []", v)
	}
}

// TestSanitize tests selection repair.
func TestSanitize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		in          Selection
		want        Selection
		wantChanged bool
	}{
		{"nil", nil, Selection{}, false},
		{"clean", Selection{"a", "b"}, Selection{"a", "b"}, false},
		{"duplicates", Selection{"a", "b", "a"}, Selection{"a", "b"}, true},
		{"empty id", Selection{"", "a"}, Selection{"a"}, true},
		{"too many", Selection{"a", "b", "c", "d", "e"}, Selection{"a", "b", "c", "d"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, changed := Sanitize(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
			}
			if changed != tc.wantChanged {
				t.Errorf("changed = %v, expected %v", changed, tc.wantChanged)
			}
		})
	}
}

type mapSource map[string]model.Broker

func (m mapSource) Get(id string) (model.Broker, bool) {
	b, ok := m[id]
	return b, ok
}

// TestResolve tests mapping ids to brokers.
func TestResolve(t *testing.T) {
	t.Parallel()

	src := mapSource{"a": {ID: "a"}, "c": {ID: "c"}}
	brokers, missing := Resolve(Selection{"c", "b", "a"}, src)

	var ids []string
	for _, b := range brokers {
		ids = append(ids, b.ID)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids); diff != "" {
		t.Errorf("brokers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}
