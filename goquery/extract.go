package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesnap"
)

// Ensure Extractor implements sitesnap.Extractor at compile time.
var _ sitesnap.Extractor = (*Extractor)(nil)

// Extractor locates a page's main content region, strips scripts and
// styles, and renders the region as structured plain text.
type Extractor struct {
	content   goquery.Matcher
	fallback  goquery.Matcher
	strict    bool
	roles     map[string]sitesnap.TagRole
	filter    *sitesnap.PhraseFilter
	documents []string
}

// NewExtractor creates an Extractor configured by profile.
// Returns EINVALID if the profile or one of its selectors is invalid.
func NewExtractor(profile *sitesnap.Profile) (*Extractor, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	content, err := CompileSelector(profile.ContentSelector)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		content:   content,
		strict:    profile.Strict,
		roles:     profile.RoleTable(),
		filter:    profile.Boilerplate,
		documents: profile.Documents(),
	}

	if profile.FallbackSelector != "" {
		e.fallback, err = CompileSelector(profile.FallbackSelector)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extract parses html and renders its main content region.
//
// The region is the first match of the content selector, then of the
// fallback selector, then the document body unless the profile is strict.
// Returns ENOCONTENT when no region is found.
func (e *Extractor) Extract(html string, baseURL string) (*sitesnap.ExtractionResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "failed to parse HTML: %v", err)
	}

	region := e.locate(doc)
	if region.Length() == 0 {
		return nil, sitesnap.Errorf(sitesnap.ENOCONTENT, "no content region in %s", baseURL)
	}

	region.Find("script, style").Remove()

	raw, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINTERNAL, "failed to render HTML: %v", err)
	}

	r := &renderer{base: base, roles: e.roles, filter: e.filter}

	return &sitesnap.ExtractionResult{
		Title:               strings.TrimSpace(doc.Find("title").First().Text()),
		RawHTML:             raw,
		Text:                sitesnap.JoinLines(r.Render(region.Get(0))),
		ReferencedDocuments: e.referencedDocuments(region, base),
	}, nil
}

func (e *Extractor) locate(doc *goquery.Document) *goquery.Selection {
	matchers := []goquery.Matcher{e.content}
	if e.fallback != nil {
		matchers = append(matchers, e.fallback)
	}
	region := firstRegion(doc, matchers)
	if region.Length() == 0 && !e.strict {
		region = doc.Find("body").First()
	}
	return region
}

// referencedDocuments collects document links anywhere in region in
// document order without duplicates.
func (e *Extractor) referencedDocuments(region *goquery.Selection, base *url.URL) []string {
	var docs []string
	seen := make(map[string]bool)
	region.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if isNonHTTPLink(href) {
			return
		}
		link, err := resolveHref(base, href)
		if err != nil || !sitesnap.HasExtension(link, e.documents) {
			return
		}
		if !seen[link] {
			seen[link] = true
			docs = append(docs, link)
		}
	})
	return docs
}
