// File path: internal/evidence/types.go
package evidence

import "github.com/bioailab/zotero-agent/internal/citation"

// Snippet is one contextualized excerpt. Offsets are absolute positions in
// the original attachment text.
type Snippet struct {
	Termo  string `json:"termo"`
	Inicio int    `json:"inicio"`
	Fim    int    `json:"fim"`
	Trecho string `json:"trecho"`
}

// AttachmentEvidence bundles the snippets found in one attachment.
// Attachments without hits are omitted from the report.
type AttachmentEvidence struct {
	AttachmentKey string    `json:"attachmentKey"`
	Filename      string    `json:"filename,omitempty"`
	Snippets      []Snippet `json:"snippets"`
}

// Coverage counts how far the pipeline got across an item's attachments.
// Invariant: AnexosComHits <= AnexosComFulltext <= AnexosTotal.
type Coverage struct {
	AnexosTotal       int `json:"anexos_total"`
	AnexosComFulltext int `json:"anexos_com_fulltext"`
	AnexosComHits     int `json:"anexos_com_hits"`
}

// Report is the assembled evidence for one item and query.
type Report struct {
	Article  citation.ArticleReference
	ItemKey  string
	Query    string
	Evidence []AttachmentEvidence
	Coverage Coverage
}
