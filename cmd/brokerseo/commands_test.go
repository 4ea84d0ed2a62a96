package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/config"
	"github.com/nao1215/brokerseo/internal/log"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/registry"
	"github.com/nao1215/brokerseo/internal/report"
	"github.com/nao1215/brokerseo/internal/search"
)

func TestPagesCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists every page", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "pages")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "25 pages:") {
			t.Errorf("expected page count, got:\n%s", out)
		}
		if !strings.Contains(out, "metatrader4-mt4") {
			t.Errorf("expected mt4 slug, got:\n%s", out)
		}
	})

	t.Run("json listing filtered by category", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "pages", "--category", "deposit", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var listing []pageListing
		if err := json.Unmarshal([]byte(out), &listing); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if len(listing) != 4 {
			t.Fatalf("expected 4 deposit pages, got %d", len(listing))
		}
		if listing[0].Slug != "no-minimum-deposit" {
			t.Errorf("expected registry order, first slug = %q", listing[0].Slug)
		}
	})

	t.Run("unknown category lists known ones", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "pages", "--category", "nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Known categories: deposit") {
			t.Errorf("expected category hint, got:\n%s", out)
		}
	})
}

func TestRenderCmd(t *testing.T) {
	t.Parallel()

	t.Run("text output", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "render", "metatrader4-mt4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Best MetaTrader 4 Brokers", "Pepperstone", "score desc"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("path lookup and json document", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "render", "/brokers/MetaTrader4-MT4/?ref=nav", "--json", "--sort", "deposit", "--order", "asc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc report.PageDocument
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if doc.Page == nil || len(doc.Page.Brokers) == 0 {
			t.Fatal("expected brokers in the document")
		}
		want := model.SortSpec{Key: model.SortByMinDeposit, Order: model.Ascending}
		if doc.Page.Sort != want {
			t.Errorf("Sort = %v, want %v", doc.Page.Sort, want)
		}
		list := doc.Page.Brokers
		for i := 1; i < len(list); i++ {
			if list[i-1].Accessibility.MinDeposit > list[i].Accessibility.MinDeposit {
				t.Errorf("brokers not sorted by deposit at %d", i)
			}
		}
		if len(doc.StructuredData) == 0 {
			t.Error("expected structured data")
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "site", "mt4.md")
		if _, err := runCLI(t, t.TempDir(), "render", "metatrader4-mt4", "--markdown", "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(data), "# Best MetaTrader 4 Brokers") {
			t.Errorf("unexpected markdown:\n%s", data)
		}
	})

	errTests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown page", args: []string{"render", "does-not-exist"}, wantErr: registry.ErrPageNotFound},
		{name: "unknown sort key", args: []string{"render", "ctrader", "--sort", "popularity"}, wantErr: model.ErrUnknownValue},
		{name: "unknown order", args: []string{"render", "ctrader", "--order", "up"}, wantErr: model.ErrUnknownValue},
		{name: "conflicting formats", args: []string{"render", "ctrader", "--json", "--markdown"}, wantErr: config.ErrConflictingReportFormats},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := runCLI(t, t.TempDir(), tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildAndHistoryCmd(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	siteDir := filepath.Join(t.TempDir(), "site")

	out, err := runCLI(t, dataDir, "build", "-o", siteDir, "--category", "platforms", "-b", "2")
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if !strings.Contains(out, "Built 4 pages") {
		t.Errorf("expected build summary, got:\n%s", out)
	}
	if !strings.Contains(out, "First recorded build.") {
		t.Errorf("expected first build notice, got:\n%s", out)
	}

	for _, name := range []string{"metatrader4-mt4.txt", "metatrader5-mt5.txt", "ctrader.txt", "tradingview-brokers.txt", sitemapFileName} {
		if _, err := os.Stat(filepath.Join(siteDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	out, err = runCLI(t, dataDir, "build", "-o", siteDir, "--category", "platforms")
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !strings.Contains(out, "No pages changed.") {
		t.Errorf("expected identical rebuild, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "build", "-o", siteDir, "--category", "features", "--no-save")
	if err != nil {
		t.Fatalf("unsaved build: %v", err)
	}
	if strings.Contains(out, "Changes since") || strings.Contains(out, "First recorded") {
		t.Errorf("--no-save should not report history, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "Recorded builds (2)") {
		t.Errorf("expected two builds, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "history", "--id", "1")
	if err != nil {
		t.Fatalf("history --id: %v", err)
	}
	if !strings.Contains(out, "/brokers/ctrader") {
		t.Errorf("expected build pages, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "history", "--id", "2", "--with", "1")
	if err != nil {
		t.Fatalf("history --with: %v", err)
	}
	if !strings.Contains(out, "No pages changed.") {
		t.Errorf("expected no changes between builds, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "history", "metatrader4-mt4")
	if err != nil {
		t.Fatalf("page history: %v", err)
	}
	if !strings.Contains(out, "History of /brokers/metatrader4-mt4 (2 builds") {
		t.Errorf("expected page history, got:\n%s", out)
	}

	if _, err := runCLI(t, dataDir, "history", "--id", "99"); err == nil {
		t.Error("expected error for unknown build")
	}
	if _, err := runCLI(t, dataDir, "history", "--with", "1"); err == nil {
		t.Error("expected error for --with without --id")
	}
}

func TestHistoryCmd_Empty(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, t.TempDir(), "history")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No builds recorded.") {
		t.Errorf("expected empty history message, got:\n%s", out)
	}
}

func TestSitemapCmd(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, t.TempDir(), "sitemap")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"<urlset", "<loc>https://brokeranalysis.com/brokers/ctrader</loc>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected sitemap to contain %q", want)
		}
	}
	if n := strings.Count(out, "<url>"); n != 25 {
		t.Errorf("expected 25 urls, got %d", n)
	}
}

func TestSearchCmd(t *testing.T) {
	t.Parallel()

	t.Run("finds broker by id", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "search", "pepperstone")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Pepperstone") {
			t.Errorf("expected Pepperstone, got:\n%s", out)
		}
	})

	t.Run("json results honour limit", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, t.TempDir(), "search", "MT4", "--limit", "2", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var results []search.Result
		if err := json.Unmarshal([]byte(out), &results); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(results) == 0 || len(results) > 2 {
			t.Errorf("expected 1..2 results, got %d", len(results))
		}
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, t.TempDir(), "search", "   ")
		if !errors.Is(err, search.ErrEmptyQuery) {
			t.Errorf("error = %v, want ErrEmptyQuery", err)
		}
	})
}

func TestCompareCmd(t *testing.T) {
	t.Parallel()

	backends := []struct {
		name  string
		setup func(t *testing.T, dataDir string) []string
	}{
		{
			name:  "sqlite",
			setup: func(*testing.T, string) []string { return nil },
		},
		{
			name: "file",
			setup: func(t *testing.T, dataDir string) []string {
				t.Helper()
				path := filepath.Join(t.TempDir(), ".brokerseo")
				if err := os.WriteFile(path, []byte("storage: file\n"), 0600); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
				return []string{"--config", path}
			},
		},
	}

	for _, bk := range backends {
		t.Run(bk.name, func(t *testing.T) {
			t.Parallel()

			dataDir := t.TempDir()
			extra := bk.setup(t, dataDir)
			run := func(args ...string) (string, error) {
				t.Helper()
				return runCLI(t, dataDir, append(args, extra...)...)
			}

			out, err := run("compare", "add", "pepperstone", "xtb", "pepperstone")
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !strings.Contains(out, "Pepperstone added to your comparison") {
				t.Errorf("expected added notice, got:\n%s", out)
			}
			if !strings.Contains(out, "Pepperstone is already in your comparison") {
				t.Errorf("expected duplicate notice, got:\n%s", out)
			}

			out, err = run("compare", "list")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if out != "pepperstone\nxtb\n" {
				t.Errorf("list = %q, want selection order", out)
			}

			out, err = run("compare")
			if err != nil {
				t.Fatalf("show: %v", err)
			}
			if !strings.Contains(out, "Comparison (2/4)") {
				t.Errorf("expected comparison table, got:\n%s", out)
			}

			out, err = run("compare", "show", "--markdown")
			if err != nil {
				t.Fatalf("show --markdown: %v", err)
			}
			if !strings.Contains(out, "# Broker Comparison") {
				t.Errorf("expected markdown comparison, got:\n%s", out)
			}

			out, err = run("compare", "add", "ic-markets", "fusion-markets", "captrader")
			if err != nil {
				t.Fatalf("add until full: %v", err)
			}
			if !strings.Contains(out, "You can compare up to 4 brokers at a time") {
				t.Errorf("expected full notice, got:\n%s", out)
			}

			if _, err := run("compare", "add", "no-such-broker"); err == nil {
				t.Error("expected error for unknown broker id")
			}

			out, err = run("compare", "remove", "xtb", "oneroyal")
			if err != nil {
				t.Fatalf("remove: %v", err)
			}
			if !strings.Contains(out, "xtb removed") || !strings.Contains(out, "oneroyal is not in your comparison") {
				t.Errorf("unexpected remove output:\n%s", out)
			}

			if _, err := run("compare", "clear"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			out, err = run("compare", "show", "--json")
			if err != nil {
				t.Fatalf("show --json: %v", err)
			}
			var c report.Comparison
			if err := json.Unmarshal([]byte(out), &c); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if len(c.Brokers) != 0 || c.Max != 4 {
				t.Errorf("expected empty comparison with max 4, got %+v", c)
			}
		})
	}
}

func TestStartWatcher_RequiresDataFiles(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	_, err := startWatcher(context.Background(), cfg, nil, log.Discard())
	if !errors.Is(err, catalog.ErrNothingToWatch) {
		t.Errorf("error = %v, want ErrNothingToWatch", err)
	}
}
