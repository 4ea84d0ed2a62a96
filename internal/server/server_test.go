package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/brokerseo/internal/compare"
	"github.com/nao1215/brokerseo/internal/report"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	snap, err := LoadSnapshot("", "")
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	t.Cleanup(func() { _ = snap.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := compare.NewStore(context.Background(), compare.NewMemoryPersister(), compare.WithLogger(logger))
	srv := New(snap, store, WithLogger(logger), WithVersion("test"), WithBaseURL("https://example.com"))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, method, url string, out any) int {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("%s %s Content-Type = %q", method, url, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	var got map[string]any
	if status := do(t, http.MethodGet, ts.URL+"/healthz", &got); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got["status"] != "ok" || got["version"] != "test" {
		t.Errorf("healthz = %v", got)
	}
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	t.Run("known slug", func(t *testing.T) {
		t.Parallel()

		var doc struct {
			Page struct {
				Brokers []struct {
					ID string `json:"id"`
				} `json:"brokers"`
				Content struct {
					CanonicalURL string `json:"canonicalUrl"`
					HasResults   bool   `json:"hasResults"`
				} `json:"content"`
			} `json:"page"`
		}
		status := do(t, http.MethodGet, ts.URL+"/api/pages/usa-traders", &doc)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if len(doc.Page.Brokers) != 1 || doc.Page.Brokers[0].ID != "forex-com" {
			t.Errorf("brokers = %+v, want [forex-com]", doc.Page.Brokers)
		}
		if !doc.Page.Content.HasResults {
			t.Error("HasResults = false")
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		t.Parallel()

		var e errorResponse
		if status := do(t, http.MethodGet, ts.URL+"/api/pages/no-such-page", &e); status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
		if e.Error != "page not found" {
			t.Errorf("error = %q", e.Error)
		}
	})

	t.Run("bad sort key", func(t *testing.T) {
		t.Parallel()

		if status := do(t, http.MethodGet, ts.URL+"/api/pages/ecn-brokers?sort=bogus", nil); status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("sort by deposit ascending", func(t *testing.T) {
		t.Parallel()

		var doc report.PageDocument
		if status := do(t, http.MethodGet, ts.URL+"/api/pages/low-deposit?sort=min_deposit&order=asc", &doc); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		b := doc.Page.Brokers
		for i := 1; i < len(b); i++ {
			if b[i].Accessibility.MinDeposit < b[i-1].Accessibility.MinDeposit {
				t.Errorf("brokers not ascending by deposit at %d", i)
			}
		}
	})
}

func TestBrokers(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	var list []struct {
		ID string `json:"id"`
	}
	if status := do(t, http.MethodGet, ts.URL+"/api/brokers", &list); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(list) == 0 || list[0].ID != "pepperstone" {
		t.Errorf("first broker = %+v, want pepperstone (highest score)", list)
	}

	if status := do(t, http.MethodGet, ts.URL+"/api/brokers/xtb", nil); status != http.StatusOK {
		t.Errorf("GET xtb status = %d", status)
	}
	if status := do(t, http.MethodGet, ts.URL+"/api/brokers/nope", nil); status != http.StatusNotFound {
		t.Errorf("GET nope status = %d, want 404", status)
	}
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	var hits []struct {
		Broker struct {
			ID string `json:"id"`
		} `json:"broker"`
	}
	if status := do(t, http.MethodGet, ts.URL+"/api/search?q=pepperstone&limit=3", &hits); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(hits) == 0 || hits[0].Broker.ID != "pepperstone" {
		t.Errorf("hits = %+v", hits)
	}

	if status := do(t, http.MethodGet, ts.URL+"/api/search?q=", nil); status != http.StatusBadRequest {
		t.Errorf("empty query status = %d, want 400", status)
	}
	if status := do(t, http.MethodGet, ts.URL+"/api/search?q=x&limit=-1", nil); status != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", status)
	}
}

func TestComparisonFlow(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	ids := func(r ComparisonResponse) []string {
		out := make([]string, 0, len(r.Comparison.Brokers))
		for _, b := range r.Comparison.Brokers {
			out = append(out, b.ID)
		}
		return out
	}

	for _, id := range []string{"xtb", "pepperstone", "ic-markets", "captrader"} {
		var resp ComparisonResponse
		if status := do(t, http.MethodPost, ts.URL+"/api/compare/"+id, &resp); status != http.StatusOK {
			t.Fatalf("add %s status = %d", id, status)
		}
	}

	var full ComparisonResponse
	if status := do(t, http.MethodPost, ts.URL+"/api/compare/spreadex", &full); status != http.StatusConflict {
		t.Errorf("fifth add status = %d, want 409", status)
	}
	if full.Notice == nil || full.Notice.Message != "You can compare up to 4 brokers at a time" {
		t.Errorf("notice = %+v", full.Notice)
	}

	if status := do(t, http.MethodPost, ts.URL+"/api/compare/unknown", nil); status != http.StatusNotFound {
		t.Errorf("add unknown status = %d, want 404", status)
	}

	var after ComparisonResponse
	if status := do(t, http.MethodDelete, ts.URL+"/api/compare/pepperstone", &after); status != http.StatusOK {
		t.Fatalf("remove status = %d", status)
	}
	if diff := cmp.Diff([]string{"xtb", "ic-markets", "captrader"}, ids(after)); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	var cleared ComparisonResponse
	if status := do(t, http.MethodDelete, ts.URL+"/api/compare", &cleared); status != http.StatusOK {
		t.Fatalf("clear status = %d", status)
	}
	if len(cleared.Comparison.Brokers) != 0 {
		t.Errorf("selection not cleared: %v", ids(cleared))
	}
}

func TestSwap(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	before := srv.Snapshot()

	next, err := LoadSnapshot("", "")
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	srv.Swap(next)

	if srv.Snapshot() != next || srv.Snapshot() == before {
		t.Error("Swap() did not replace the snapshot")
	}
	if status := do(t, http.MethodGet, ts.URL+"/healthz", nil); status != http.StatusOK {
		t.Errorf("healthz after swap status = %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	if status := do(t, http.MethodGet, ts.URL+"/nope", nil); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}
