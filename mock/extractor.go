package mock

import "github.com/fwojciec/sitesnap"

var (
	_ sitesnap.Extractor     = (*Extractor)(nil)
	_ sitesnap.LinkExtractor = (*LinkExtractor)(nil)
)

// Extractor is a mock implementation of sitesnap.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*sitesnap.ExtractionResult, error)
}

func (e *Extractor) Extract(html, baseURL string) (*sitesnap.ExtractionResult, error) {
	return e.ExtractFn(html, baseURL)
}

// LinkExtractor is a mock implementation of sitesnap.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
