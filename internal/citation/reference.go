// File path: internal/citation/reference.go
package citation

import (
	"regexp"
	"strings"

	"github.com/bioailab/zotero-agent/internal/zotero"
)

// Placeholders used when a record lacks a field. The agent surface speaks
// Portuguese, matching the lab's conventions.
const (
	PlaceholderTitle  = "Sem título"
	PlaceholderAuthor = "Autor Desconhecido"
	PlaceholderNone   = "N/A"
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// ArticleReference is the minimal, stable citation shape handed to the
// agent. It is a lossy projection of a Zotero item.
type ArticleReference struct {
	ItemKey string `json:"itemKey"`
	Titulo  string `json:"titulo"`
	Autor   string `json:"autor"`
	Ano     string `json:"ano"`
	DOI     string `json:"doi"`
	URL     string `json:"url"`
	Tipo    string `json:"tipo"`
}

// FromItem normalizes a raw item into an ArticleReference. The second
// return value is false when the record is absent; a present but malformed
// record always normalizes, falling back to placeholders field by field.
func FromItem(item *zotero.Item) (ArticleReference, bool) {
	if item == nil {
		return ArticleReference{}, false
	}
	data := item.Data
	key := data.Key
	if key == "" {
		key = item.Key
	}
	return ArticleReference{
		ItemKey: key,
		Titulo:  fallback(data.Title, PlaceholderTitle),
		Autor:   firstAuthor(data.Creators),
		Ano:     extractYear(data.Date),
		DOI:     fallback(data.DOI, PlaceholderNone),
		URL:     fallback(data.URL, PlaceholderNone),
		Tipo:    fallback(data.ItemType, PlaceholderNone),
	}, true
}

// firstAuthor resolves the display author: the first creator's last name,
// then its institutional name, then the unknown-author placeholder.
func firstAuthor(creators []zotero.Creator) string {
	if len(creators) == 0 {
		return PlaceholderAuthor
	}
	first := creators[0]
	if name := strings.TrimSpace(first.LastName); name != "" {
		return name
	}
	if name := strings.TrimSpace(first.Name); name != "" {
		return name
	}
	return PlaceholderAuthor
}

// extractYear pulls the first 19xx/20xx token out of a free-text date
// field. Zotero date strings are not guaranteed to parse as dates.
func extractYear(date string) string {
	if match := yearPattern.FindString(date); match != "" {
		return match
	}
	return PlaceholderNone
}

func fallback(value, placeholder string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return placeholder
}
