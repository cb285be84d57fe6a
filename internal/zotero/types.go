// File path: internal/zotero/types.go
package zotero

import "context"

// Store is the capability surface the rest of the service needs from the
// bibliographic library. The HTTP client implements it against the Zotero
// Web API; tests swap in fakes.
type Store interface {
	// Item fetches a single item by key. Returns ErrNotFound when the key
	// does not resolve.
	Item(ctx context.Context, key string) (*Item, error)
	// Children lists the child records of an item, up to limit. An item
	// without children yields an empty slice, not an error.
	Children(ctx context.Context, key string, limit int) ([]Item, error)
	// FullText retrieves the server-indexed text of an attachment. A nil
	// result with nil error means the store has no indexed content.
	FullText(ctx context.Context, key string) (*FullText, error)
	// Search runs a metadata/full-text search over the library. The second
	// return value is the raw item count of this page.
	Search(ctx context.Context, query string, limit, start int) ([]Item, int, error)
	// TopItems lists top-level items without a search filter.
	TopItems(ctx context.Context, limit, start int) ([]Item, int, error)
}

// Item mirrors the wire shape of a Zotero item envelope.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Data    ItemData `json:"data"`
}

// ItemData carries the fields of an item the service consumes. Zotero
// returns many more; unknown fields are ignored on decode.
type ItemData struct {
	Key          string    `json:"key"`
	ItemType     string    `json:"itemType"`
	Title        string    `json:"title"`
	Creators     []Creator `json:"creators"`
	AbstractNote string    `json:"abstractNote"`
	DOI          string    `json:"DOI"`
	URL          string    `json:"url"`
	Date         string    `json:"date"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"contentType"`
}

// Creator is one author-like entry. Institutional creators carry Name
// instead of FirstName/LastName.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}

// FullText is the indexed text payload of an attachment.
type FullText struct {
	Content      string `json:"content"`
	IndexedChars int    `json:"indexedChars"`
	IndexedPages int    `json:"indexedPages"`
}

// IsAttachment reports whether the item is an attachment record.
func (i Item) IsAttachment() bool {
	return i.Data.ItemType == "attachment"
}
