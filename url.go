package sitesnap

import (
	"net/url"
	"path"
	"strings"
)

// DefaultBlockedExtensions lists document and archive formats that are never
// crawled as pages.
func DefaultBlockedExtensions() []string {
	return []string{".pdf", ".csv", ".doc", ".docx", ".zip", ".xls", ".xlsx"}
}

// DefaultDocumentExtensions lists link targets recorded as referenced documents.
func DefaultDocumentExtensions() []string {
	return []string{".pdf"}
}

// NormalizeURL resolves href against base, strips the fragment and any
// trailing slash from the path. Returns EMALFORMED if href cannot be parsed.
func NormalizeURL(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EMALFORMED, "invalid href %q: %v", href, err)
	}
	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = strings.TrimRight(u.RawPath, "/")
	return u.String(), nil
}

// MustNormalizeURL is like NormalizeURL for a standalone absolute URL.
// Malformed input is returned unchanged.
func MustNormalizeURL(rawURL string) string {
	s, err := NormalizeURL(nil, rawURL)
	if err != nil {
		return rawURL
	}
	return s
}

// IsHTTP reports whether u uses the http or https scheme.
func IsHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

// SameOrigin reports whether a and b share scheme and host.
func SameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// IsNested reports whether the path of rawURL is a strict descendant of
// rootPath. Matching is done on whole path segments, so "/ab" is not nested
// under "/a".
func IsNested(rawURL, rootPath string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimRight(u.Path, "/")
	root := strings.TrimRight(rootPath, "/")
	if p == root {
		return false
	}
	return strings.HasPrefix(p, root+"/")
}

// HasExtension reports whether the path of rawURL ends in one of exts.
// Comparison is case-insensitive; exts include the leading dot.
func HasExtension(rawURL string, exts []string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// URLPath returns the path segments of rawURL with leading and trailing
// slashes removed. An empty path maps to the single segment "index".
func URLPath(rawURL string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, Errorf(EMALFORMED, "invalid URL %q: %v", rawURL, err)
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return []string{"index"}, nil
	}
	return strings.Split(p, "/"), nil
}
