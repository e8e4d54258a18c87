package sitesnap

import "context"

// Page is an extracted page ready to be persisted.
type Page struct {
	URL                 string
	Title               string
	HTML                string
	Text                string
	ReferencedDocuments []string
}

// NewPage builds a page from an extraction result.
func NewPage(url string, res *ExtractionResult) *Page {
	return &Page{
		URL:                 url,
		Title:               res.Title,
		HTML:                res.RawHTML,
		Text:                res.Text,
		ReferencedDocuments: res.ReferencedDocuments,
	}
}

// ContentStore persists page snapshots with atomic semantics.
// Save writes to a temporary location; Commit replaces the previous
// snapshot with everything saved; Abort discards pending changes.
// Save must be safe for concurrent use.
type ContentStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
