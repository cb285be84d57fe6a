// File path: internal/api/types.go
package api

import (
	"github.com/bioailab/zotero-agent/internal/citation"
	"github.com/bioailab/zotero-agent/internal/evidence"
)

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Start int    `json:"start"`
}

type evidenceRequest struct {
	Query        string `json:"query"`
	MaxSnippets  int    `json:"max_snippets"`
	ContextChars int    `json:"context_chars"`
}

type evidenceResponse struct {
	Artigo     citation.ArticleReference     `json:"artigo"`
	ItemKey    string                        `json:"itemKey"`
	Query      string                        `json:"query"`
	Evidencias []evidence.AttachmentEvidence `json:"evidencias"`
	Cobertura  evidence.Coverage             `json:"cobertura"`
	Observacao string                        `json:"observacao"`
}

type analyzeRequest struct {
	Hipotese   string `json:"hipotese"`
	MaxArtigos int    `json:"max_artigos"`
}

type analyzeResponse struct {
	Analise             string `json:"analise"`
	ArtigosConsiderados int    `json:"artigos_considerados"`
	Provider            string `json:"provider"`
}
