// File path: internal/api/analyze_handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bioailab/zotero-agent/internal/citation"
	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/llm"
)

const defaultAnalysisArticles = 15

// instrucaoIA is the fixed persona prepended to every analysis prompt.
const instrucaoIA = "Você é o Assistente Sênior do BioAiLab. " +
	"Sua especialidade é correlacionar dados de sensores industriais e biotecnologia. " +
	"Sempre priorize evidências quantitativas e mencione se o artigo é recente (pós-2024)."

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: analyze decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	hipotese := strings.TrimSpace(req.Hipotese)
	if hipotese == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("hipotese obrigatória"))
		return
	}
	maxArtigos := req.MaxArtigos
	if maxArtigos <= 0 || maxArtigos > citation.MaxSearchLimit {
		maxArtigos = defaultAnalysisArticles
	}

	provider := s.provider
	if provider == nil {
		provider = llm.NewProvider()
	}

	contexto, considered, err := s.articleContext(r.Context(), maxArtigos)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	logger.Info("api: hypothesis analysis", "articles", considered, "provider", provider.Name())

	prompt := fmt.Sprintf("%s\n\nCONTEXTO DOS ARTIGOS:\n%s\n\nPERGUNTA/HIPÓTESE:\n%s", instrucaoIA, contexto, hipotese)
	answer, err := provider.Chat(r.Context(), []llm.Message{{Role: "system", Content: prompt}})
	if err != nil {
		logger.Error("api: analysis completion failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		Analise:             answer,
		ArtigosConsiderados: considered,
		Provider:            provider.Name(),
	})
}

// articleContext renders the library's most recent articles (title, author,
// year, abstract) into the text block fed to the model.
func (s *Server) articleContext(ctx context.Context, limit int) (string, int, error) {
	items, _, err := s.store.TopItems(ctx, limit, 0)
	if err != nil {
		return "", 0, fmt.Errorf("load analysis context: %w", err)
	}
	var builder strings.Builder
	count := 0
	for i := range items {
		if items[i].IsAttachment() {
			continue
		}
		ref, ok := citation.FromItem(&items[i])
		if !ok {
			continue
		}
		count++
		fmt.Fprintf(&builder, "- %s (%s, %s)", ref.Titulo, ref.Autor, ref.Ano)
		if abstract := strings.TrimSpace(items[i].Data.AbstractNote); abstract != "" {
			fmt.Fprintf(&builder, ": %s", abstract)
		}
		builder.WriteString("\n")
	}
	if count == 0 {
		return "Nenhum artigo disponível na biblioteca.", 0, nil
	}
	return builder.String(), count, nil
}
