package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/sitesnap"
)

// CompileSelector compiles a CSS selector.
// Returns EINVALID if the selector cannot be parsed.
func CompileSelector(sel string) (goquery.Matcher, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid selector %q: %v", sel, err)
	}
	return m, nil
}

// compileSelectors compiles each non-empty selector in order.
func compileSelectors(sels []string) ([]goquery.Matcher, error) {
	matchers := make([]goquery.Matcher, 0, len(sels))
	for _, s := range sels {
		if strings.TrimSpace(s) == "" {
			continue
		}
		m, err := CompileSelector(s)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// firstRegion returns the first element matched by the first matcher that
// matches anything. An empty selection is returned when none match.
func firstRegion(doc *goquery.Document, matchers []goquery.Matcher) *goquery.Selection {
	for _, m := range matchers {
		if sel := doc.FindMatcher(m).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection.Slice(0, 0)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// resolveHref resolves href against base without further normalization.
// Returns EMALFORMED for unparseable hrefs and script links.
func resolveHref(base *url.URL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", sitesnap.Errorf(sitesnap.EMALFORMED, "script link %q", href)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", sitesnap.Errorf(sitesnap.EMALFORMED, "invalid href %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
