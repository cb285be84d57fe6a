// File path: internal/api/logs_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/bioailab/zotero-agent/internal/common"
)

// handleLogs exposes the in-memory log history for diagnostics.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit < len(entries) {
			entries = entries[len(entries)-limit:]
		}
	}
	if entries == nil {
		entries = []common.LogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  entries,
		"count": len(entries),
	})
}
