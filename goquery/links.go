package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesnap"
)

// Ensure LinkExtractor implements sitesnap.LinkExtractor at compile time.
var _ sitesnap.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects links from the primary navigable region of a page:
// the first element matching one of its region selectors, else the body.
type LinkExtractor struct {
	regions []goquery.Matcher
}

// NewLinkExtractor creates a LinkExtractor trying regions in order.
// Returns EINVALID if a selector cannot be parsed.
func NewLinkExtractor(regions []string) (*LinkExtractor, error) {
	matchers, err := compileSelectors(regions)
	if err != nil {
		return nil, err
	}
	return &LinkExtractor{regions: matchers}, nil
}

// ExtractLinks returns the normalized absolute URLs of the anchors in the
// page's primary region, deduplicated and sorted. Non-HTTP links and
// malformed hrefs are skipped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "failed to parse HTML: %v", err)
	}

	region := firstRegion(doc, e.regions)
	if region.Length() == 0 {
		region = doc.Find("body").First()
	}

	seen := make(map[string]bool)
	var links []string
	region.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
			return
		}
		link, err := sitesnap.NormalizeURL(base, href)
		if err != nil {
			return
		}
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})

	sort.Strings(links)
	return links, nil
}
