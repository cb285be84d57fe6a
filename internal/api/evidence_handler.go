// File path: internal/api/evidence_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	chi "github.com/go-chi/chi/v5"

	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/evidence"
)

const (
	defaultMaxSnippets  = 6
	maxSnippetsCeiling  = 20
	defaultContextChars = 220
	minContextChars     = 80
	maxContextChars     = 1000
)

// observacao is the static caveat attached to every evidence response:
// absence of evidence is not evidence of absence when indexing lags.
const observacao = "A ausência de evidências pode indicar que o Zotero ainda não indexou o texto completo do anexo, ou que o termo realmente não ocorre nos documentos."

func (s *Server) handleEvidence(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	itemKey := chi.URLParam(r, "item_key")

	var req evidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: evidence decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) < 2 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query deve ter pelo menos 2 caracteres"))
		return
	}
	maxSnippets := req.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}
	if maxSnippets > maxSnippetsCeiling {
		maxSnippets = maxSnippetsCeiling
	}
	contextChars := req.ContextChars
	if contextChars <= 0 {
		contextChars = defaultContextChars
	}
	if contextChars < minContextChars {
		contextChars = minContextChars
	}
	if contextChars > maxContextChars {
		contextChars = maxContextChars
	}

	logger.Info("api: evidence request", "item", itemKey, "query", query, "max_snippets", maxSnippets, "context_chars", contextChars)
	report, err := s.gatherer.Gather(r.Context(), itemKey, query, maxSnippets, contextChars)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	evidencias := report.Evidence
	if evidencias == nil {
		evidencias = []evidence.AttachmentEvidence{}
	}
	writeJSON(w, http.StatusOK, evidenceResponse{
		Artigo:     report.Article,
		ItemKey:    report.ItemKey,
		Query:      report.Query,
		Evidencias: evidencias,
		Cobertura:  report.Coverage,
		Observacao: observacao,
	})
}
