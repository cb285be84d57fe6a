// File path: internal/api/server.go
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/evidence"
	"github.com/bioailab/zotero-agent/internal/llm"
	"github.com/bioailab/zotero-agent/internal/zotero"
)

const agentKeyHeader = "X-AGENT-KEY"

type Server struct {
	router   chi.Router
	store    zotero.Store
	provider llm.Provider
	gatherer *evidence.Gatherer
	agentKey string
}

// NewServer wires the evidence pipeline and the agent endpoints. agentKey
// is optional; when empty the agent endpoints are open.
func NewServer(store zotero.Store, provider llm.Provider, agentKey string) (*Server, error) {
	logger := common.Logger()
	if store == nil {
		return nil, fmt.Errorf("zotero store required")
	}
	srv := &Server{
		router:   chi.NewRouter(),
		store:    store,
		provider: provider,
		gatherer: evidence.NewGatherer(store),
		agentKey: agentKey,
	}
	srv.routes()
	logger.Info("api: server ready", "auth_enabled", agentKey != "")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", agentKeyHeader},
	}))
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Get("/logs", s.handleLogs)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAgentKey)
		r.Post("/buscar_artigos", s.handleSearch)
		r.Post("/itens/{item_key}/evidencias", s.handleEvidence)
		r.Post("/analisar", s.handleAnalyze)
	})
}

// requireAgentKey rejects agent requests whose X-AGENT-KEY header does not
// match the configured secret. A server without a secret skips the check.
func (s *Server) requireAgentKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.agentKey != "" {
			provided := r.Header.Get(agentKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(s.agentKey)) != 1 {
				common.Logger().Warn("api: agent key rejected", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, fmt.Errorf("chave de agente ausente ou inválida"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeStoreError maps upstream-store failures onto the HTTP surface:
// missing keys become 404, preserved upstream statuses become 502, the
// rest is a generic service error.
func writeStoreError(w http.ResponseWriter, err error) {
	var apiErr *zotero.APIError
	switch {
	case errors.Is(err, zotero.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Errorf("item não encontrado"))
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
