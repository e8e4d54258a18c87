package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitesnap"
)

// BuildPathTree arranges urls into a tree of path segments below rootPath.
// The returned node has URL rootURL. Each URL is reached through one node
// per path segment, so intermediate pages exist in the tree even when no
// link pointed at them. URLs outside rootPath are ignored.
func BuildPathTree(rootURL, rootPath string, urls []string) (*sitesnap.SiteNode, error) {
	base, err := url.Parse(rootURL)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid root URL %q", rootURL)
	}
	root := &sitesnap.SiteNode{URL: rootURL}
	prefix := strings.TrimRight(rootPath, "/")
	origin := base.Scheme + "://" + base.Host

	for _, raw := range urls {
		if !sitesnap.IsNested(raw, prefix) {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
		skip, ok := prefixSegments(segments, prefix)
		if !ok {
			continue
		}

		node := root
		current := origin
		for _, seg := range segments[:skip] {
			current += "/" + seg
		}
		for i, seg := range segments[skip:] {
			current += "/" + seg
			if skip+i == len(segments)-1 {
				current = raw
			}
			node = node.AddChild(current)
		}
	}
	return root, nil
}

// prefixSegments returns how many leading escaped segments spell out the
// decoded prefix.
func prefixSegments(segments []string, prefix string) (int, bool) {
	if prefix == "" {
		return 0, true
	}
	var decoded string
	for i, seg := range segments {
		s, err := url.PathUnescape(seg)
		if err != nil {
			return 0, false
		}
		decoded += "/" + s
		if decoded == prefix {
			return i + 1, true
		}
		if len(decoded) >= len(prefix) {
			return 0, false
		}
	}
	return 0, false
}

// StaticStructure builds a flat structure from a fixed list of page paths
// on baseURL. Paths are normalized and deduplicated; order is preserved.
func StaticStructure(baseURL string, paths []string) (sitesnap.Structure, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !sitesnap.IsHTTP(base) || base.Host == "" {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid base URL %q", baseURL)
	}
	seen := make(map[string]bool, len(paths))
	var s sitesnap.Structure
	for _, p := range paths {
		u, err := sitesnap.NormalizeURL(base, p)
		if err != nil {
			return nil, err
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		s = append(s, &sitesnap.SiteNode{URL: u})
	}
	return s, nil
}
