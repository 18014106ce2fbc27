package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/mwiater/holonet/internal/enrich"
	"github.com/mwiater/holonet/internal/search"
	"go.uber.org/zap"
)

// pageData is what every template receives.
type pageData struct {
	Title      string
	Query      string
	Fallback   bool
	Characters []enrich.Result
}

type apiResponse struct {
	Query      string          `json:"query"`
	Fallback   bool            `json:"fallback"`
	Characters []enrich.Result `json:"characters"`
	Skipped    []string        `json:"skipped,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", pageData{Title: "holonet"})
}

// handleSearchForm turns the search form submission into the path-based route.
func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/search-character/"+url.PathEscape(q), http.StatusSeeOther)
}

func (s *Server) handleSearchCharacter(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	log := requestLogger(r)

	out, err := s.runner.Run(r.Context(), query)
	data := pageData{Title: "holonet: " + query, Query: query, Fallback: out.Fallback}
	if err != nil {
		log.Error("search failed", zap.String("query", query), zap.Error(err))
		s.render(w, r, http.StatusBadGateway, "error", data)
		return
	}
	if len(out.Results) == 0 {
		log.Info("no characters found", zap.String("query", query))
		s.render(w, r, http.StatusNotFound, "oops", data)
		return
	}

	log.Info("search complete",
		zap.String("query", query),
		zap.Bool("fallback", out.Fallback),
		zap.Int("results", len(out.Results)),
		zap.Int("skipped", len(out.Failures)))
	data.Characters = out.Results
	s.render(w, r, http.StatusOK, "results", data)
}

func (s *Server) handleAPISearchCharacter(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	log := requestLogger(r)

	out, err := s.runner.Run(r.Context(), query)
	if err != nil {
		log.Error("api search failed", zap.String("query", query), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, apiError{Error: err.Error()})
		return
	}
	if len(out.Results) == 0 {
		writeJSON(w, http.StatusNotFound, apiError{Error: "no results"})
		return
	}

	resp := apiResponse{Query: query, Fallback: out.Fallback, Characters: out.Results}
	for _, f := range out.Failures {
		resp.Skipped = append(resp.Skipped, f.CharacterName)
	}
	writeJSON(w, http.StatusOK, resp)
}

// render executes a template into a buffer first so a template error never
// leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		requestLogger(r).Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var _ Runner = (*search.Pipeline)(nil)
