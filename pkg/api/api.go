/*
Package api serves word associations over HTTP.

Routes:

	GET /associations/{word}?limit=10&split=true
	GET /definitions/{word}
	GET /closest/{word}
	GET /health

Invalid words (empty or not purely alphabetic) and non-positive limits are
answered with 404, the status web clients of the service already handle.
Lookup failures are answered with 502.
*/
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bastiangx/mnemo/internal/logger"
	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/config"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/present"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// DefinitionResponse is the body of /definitions.
type DefinitionResponse struct {
	Word        string   `json:"word"`
	Definitions []string `json:"definitions"`
}

// ClosestResponse is the body of /closest.
type ClosestResponse struct {
	Word string `json:"word"`
}

// Handler serves the HTTP API.
type Handler struct {
	engine *splitter.Engine
	lookup association.Lookup
	server atomic.Pointer[config.ServerConfig]
	logger *log.Logger
}

// NewHandler creates a Handler. lookup serves the definition and closest-word routes.
func NewHandler(engine *splitter.Engine, lookup association.Lookup, cfg config.ServerConfig) *Handler {
	h := &Handler{
		engine: engine,
		lookup: lookup,
		logger: logger.New("api"),
	}
	h.SetServerConfig(cfg)
	return h
}

// SetServerConfig swaps the server limits, used when the config file is reloaded.
func (h *Handler) SetServerConfig(cfg config.ServerConfig) {
	h.server.Store(&cfg)
}

// Routes returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.sendError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/associations/{word}", h.handleAssociations)
	r.Get("/definitions/{word}", h.handleDefinitions)
	r.Get("/closest/{word}", h.handleClosest)
	return r
}

func (h *Handler) handleAssociations(w http.ResponseWriter, r *http.Request) {
	cfg := h.server.Load()
	word := chi.URLParam(r, "word")
	query := r.URL.Query()

	limit := cfg.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.sendError(w, "Word or limit is illegal.", http.StatusNotFound)
			return
		}
		limit = parsed
	}

	split := true
	if raw := query.Get("split"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.sendError(w, "Word or limit is illegal.", http.StatusNotFound)
			return
		}
		split = parsed
	}

	if !utils.IsValidRequest(word, limit) {
		h.sendError(w, "Word or limit is illegal.", http.StatusNotFound)
		return
	}
	limit = utils.ClampLimit(limit, cfg.MaxLimit)

	ctx, cancel := context.WithTimeout(r.Context(), cfg.RequestTimeout())
	defer cancel()

	candidate, err := h.engine.Best(ctx, word, limit, split)
	if err != nil {
		h.sendFailure(w, word, err)
		return
	}
	h.sendJSON(w, http.StatusOK, present.FromCandidate(candidate))
}

func (h *Handler) handleDefinitions(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if !utils.IsAlphaWord(word) {
		h.sendError(w, "Word is illegal.", http.StatusNotFound)
		return
	}

	entry, err := h.closest(r.Context(), word)
	if err != nil {
		h.sendFailure(w, word, err)
		return
	}
	defs := entry.Definitions
	if defs == nil {
		defs = []string{}
	}
	h.sendJSON(w, http.StatusOK, DefinitionResponse{Word: entry.Word, Definitions: defs})
}

func (h *Handler) handleClosest(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if !utils.IsAlphaWord(word) {
		h.sendError(w, "Word is illegal.", http.StatusNotFound)
		return
	}

	entry, err := h.closest(r.Context(), word)
	if err != nil {
		h.sendFailure(w, word, err)
		return
	}
	h.sendJSON(w, http.StatusOK, ClosestResponse{Word: entry.Word})
}

func (h *Handler) closest(ctx context.Context, word string) (*association.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, h.server.Load().RequestTimeout())
	defer cancel()

	entry, err := h.lookup.Closest(ctx, word)
	if err != nil && !errors.Is(err, datamuse.ErrNoMatch) {
		return nil, errors.Join(association.ErrLookup, err)
	}
	return entry, err
}

func (h *Handler) sendFailure(w http.ResponseWriter, word string, err error) {
	status := present.Status(err)
	h.logger.Warn("request failed", "word", word, "status", status, "err", err)
	h.sendError(w, http.StatusText(status), status)
}

func (h *Handler) sendError(w http.ResponseWriter, message string, status int) {
	h.sendJSON(w, status, ErrorResponse{Error: message, Status: status})
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Errorf("Marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
