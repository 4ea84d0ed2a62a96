package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nao1215/brokerseo/internal/compare"
	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/pipeline"
	"github.com/nao1215/brokerseo/internal/rank"
	"github.com/nao1215/brokerseo/internal/registry"
	"github.com/nao1215/brokerseo/internal/report"
	"github.com/nao1215/brokerseo/internal/search"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// PageSummary is one entry of GET /api/pages.
type PageSummary struct {
	Path     string `json:"path"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// ComparisonResponse is returned by the comparison endpoints.
type ComparisonResponse struct {
	Notice     *compare.Notice    `json:"notice,omitempty"`
	Comparison *report.Comparison `json:"comparison"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status is already sent; an encode error can only be a broken connection.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// sortSpec reads ?sort= and ?order=, falling back to the server default.
func (s *Server) sortSpec(r *http.Request) (model.SortSpec, error) {
	spec := s.defaultSort
	if v := r.URL.Query().Get("sort"); v != "" {
		k, err := model.ParseSortKey(v)
		if err != nil {
			return spec, err
		}
		spec.Key = k
	}
	if v := r.URL.Query().Get("order"); v != "" {
		o, err := model.ParseSortOrder(v)
		if err != nil {
			return spec, err
		}
		spec.Order = o
	}
	return spec, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"brokers": snap.Catalog.Len(),
		"pages":   snap.Registry.Len(),
	})
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	reg := s.Snapshot().Registry

	pages := reg.Pages()
	if c := r.URL.Query().Get("category"); c != "" {
		pages = reg.ByCategory(c)
	}

	out := make([]PageSummary, len(pages))
	for i := range pages {
		out[i] = PageSummary{
			Path:     pages[i].Path,
			Slug:     pages[i].Slug(),
			Title:    pages[i].Title,
			Category: pages[i].Category,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()

	cfg, err := snap.Registry.Lookup(chi.URLParam(r, "slug"))
	if errors.Is(err, registry.ErrPageNotFound) {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	spec, err := s.sortSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings := pipeline.Settings{
		Source:          snap.Catalog,
		UnknownLeverage: s.unknownLeverage,
		Content:         []content.Option{content.WithBaseURL(s.baseURL)},
		Logger:          s.logger,
	}
	result, err := pipeline.Render(r.Context(), settings, cfg, spec)
	if err != nil {
		s.logger.Error("render failed", "page", cfg.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	writeJSON(w, http.StatusOK, report.NewPageDocument(result, s.version, s.baseURL))
}

func (s *Server) handleListBrokers(w http.ResponseWriter, r *http.Request) {
	spec, err := s.sortSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rank.BySpec(s.Snapshot().Catalog.Brokers(), spec))
}

func (s *Server) handleGetBroker(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Snapshot().Catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "broker not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := s.Snapshot().Search.Search(r.URL.Query().Get("q"), limit)
	if errors.Is(err, search.ErrEmptyQuery) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// comparison resolves the current selection against the served catalog.
func (s *Server) comparison() *report.Comparison {
	brokers, missing := compare.Resolve(s.store.IDs(), s.Snapshot().Catalog)
	return &report.Comparison{Brokers: brokers, Missing: missing, Max: compare.MaxSelection}
}

func (s *Server) handleGetComparison(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ComparisonResponse{Comparison: s.comparison()})
}

func (s *Server) handleAddComparison(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Snapshot().Catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "broker not found")
		return
	}

	notice, err := s.store.Add(r.Context(), b)
	if err != nil {
		s.logger.Error("failed to save comparison", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save comparison")
		return
	}

	status := http.StatusOK
	if notice.Kind == compare.NoticeFull {
		status = http.StatusConflict
	}
	writeJSON(w, status, ComparisonResponse{Notice: &notice, Comparison: s.comparison()})
}

func (s *Server) handleRemoveComparison(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Error("failed to save comparison", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save comparison")
		return
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{Comparison: s.comparison()})
}

func (s *Server) handleClearComparison(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.Error("failed to save comparison", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save comparison")
		return
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{Comparison: s.comparison()})
}
