// File path: internal/api/search_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bioailab/zotero-agent/internal/citation"
	"github.com/bioailab/zotero-agent/internal/common"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: search decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Start < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("start deve ser >= 0"))
		return
	}
	logger.Info("api: article search", "query", req.Query, "limit", req.Limit, "start", req.Start)

	result, err := citation.SearchArticles(r.Context(), s.store, req.Query, req.Limit, req.Start)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
