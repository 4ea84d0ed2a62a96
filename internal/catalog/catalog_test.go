package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/brokerseo/internal/model"
)

// TestDefault tests that the embedded catalog loads and is consistent.
func TestDefault(t *testing.T) {
	t.Parallel()

	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if c.Len() < 10 {
		t.Errorf("expected at least 10 brokers, got %d", c.Len())
	}
	if c.Source() != "embedded" {
		t.Errorf("Source() = %q", c.Source())
	}

	b, ok := c.Get("pepperstone")
	if !ok {
		t.Fatal("expected pepperstone in catalog")
	}
	if b.Score != 9.2 || b.Accessibility.MinDeposit != 200 {
		t.Errorf("unexpected pepperstone data: score=%v minDeposit=%v", b.Score, b.Accessibility.MinDeposit)
	}

	for _, b := range c.Brokers() {
		if b.Regulation.Regulators == nil {
			t.Errorf("broker %s has nil regulators", b.ID)
		}
	}
}

// TestNewValidation tests the load-time invariants.
func TestNewValidation(t *testing.T) {
	t.Parallel()

	valid := model.Broker{ID: "a", Name: "A", Score: 8}

	testCases := []struct {
		name    string
		brokers []model.Broker
		wantErr error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"missing id", []model.Broker{{Name: "x"}}, ErrMissingID},
		{"duplicate id", []model.Broker{valid, valid}, ErrDuplicateID},
		{"score too high", []model.Broker{{ID: "a", Score: 11}}, ErrScoreOutOfRange},
		{"negative score", []model.Broker{{ID: "a", Score: -1}}, ErrScoreOutOfRange},
		{
			"negative deposit",
			[]model.Broker{{ID: "a", Accessibility: model.Accessibility{MinDeposit: -5}}},
			ErrNegativeValue,
		},
		{
			"negative spread",
			[]model.Broker{{ID: "a", TradingConditions: model.TradingConditions{Spreads: model.Spreads{EURUSD: -0.1}}}},
			ErrNegativeValue,
		},
		{"valid", []model.Broker{valid}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.brokers, "test")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

// TestBrokersReturnsCopy tests that callers cannot mutate the catalog.
func TestBrokersReturnsCopy(t *testing.T) {
	t.Parallel()

	c, err := New([]model.Broker{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	list := c.Brokers()
	list[0].Name = "changed"

	b, _ := c.Get("a")
	if b.Name != "A" {
		t.Errorf("catalog was mutated through Brokers(): %q", b.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, c.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected Get(missing) to fail")
	}
}

// TestLoadFile tests loading from disk and the embedded fallback.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded data", func(t *testing.T) {
		t.Parallel()
		c, err := LoadFile("")
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if c.Source() != "embedded" {
			t.Errorf("Source() = %q", c.Source())
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "brokers.yaml")
		data := []byte(`brokers:
  - id: demo
    name: Demo Broker
    score: 7.5
    tradingConditions:
      maxLeverage: "1:100"
`)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
		c, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		b, ok := c.Get("demo")
		if !ok || b.TradingConditions.MaxLeverage != "1:100" {
			t.Errorf("unexpected broker: %+v", b)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("brokers: [\n"), "bad")
		if err == nil {
			t.Error("expected parse error")
		}
	})
}
