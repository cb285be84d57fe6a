// File path: internal/citation/search.go
package citation

import (
	"context"
	"fmt"
	"strings"

	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/zotero"
)

const (
	// MaxSearchLimit caps one page of library results.
	MaxSearchLimit = 50

	originSearch = "busca"
	originTop    = "itens_top"
)

// Pagination echoes the library's raw-item cursor semantics: the next
// start advances by the count of raw records received, including the
// attachment records filtered out of the article list.
type Pagination struct {
	StartRecebido            int `json:"start_recebido"`
	LimitEfetivo             int `json:"limit_efetivo"`
	ItensBrutosRecebidos     int `json:"itens_brutos_recebidos"`
	ItensFiltradosRetornados int `json:"itens_filtrados_retornados"`
	ProximoStart             int `json:"proximo_start"`
}

// SearchResult is one page of normalized references plus cursor state.
type SearchResult struct {
	Artigos   []ArticleReference `json:"artigos"`
	Paginacao Pagination         `json:"paginacao"`
	Origem    string             `json:"origem"`
}

// SearchArticles queries the library when a query is present, otherwise
// lists top-level items. Attachment records are dropped from the article
// list; they are not independently citable.
func SearchArticles(ctx context.Context, store zotero.Store, query string, limit, start int) (*SearchResult, error) {
	logger := common.Logger()
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	if start < 0 {
		start = 0
	}

	var (
		items  []zotero.Item
		raw    int
		origem string
		err    error
	)
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		items, raw, err = store.Search(ctx, trimmed, limit, start)
		origem = originSearch
	} else {
		items, raw, err = store.TopItems(ctx, limit, start)
		origem = originTop
	}
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	artigos := make([]ArticleReference, 0, len(items))
	for i := range items {
		if items[i].IsAttachment() {
			continue
		}
		if ref, ok := FromItem(&items[i]); ok {
			artigos = append(artigos, ref)
		}
	}
	logger.Debug("citation: search page assembled", "raw", raw, "returned", len(artigos), "origin", origem)

	return &SearchResult{
		Artigos: artigos,
		Paginacao: Pagination{
			StartRecebido:            start,
			LimitEfetivo:             limit,
			ItensBrutosRecebidos:     raw,
			ItensFiltradosRetornados: len(artigos),
			ProximoStart:             start + raw,
		},
		Origem: origem,
	}, nil
}
