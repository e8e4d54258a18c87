// Package fs provides file-based storage for site snapshots: the content
// store, structure files, and the static archive index.
package fs

import (
	"path"
	"strings"

	"github.com/fwojciec/sitesnap"
)

// Content tree names inside a snapshot directory.
const (
	HTMLDir  = "html"
	TextDir  = "text"
	Manifest = "manifest.json"
)

// PagePaths returns the slash-separated paths of a page's HTML and text
// files relative to the snapshot root.
// Example: https://example.org/about/team → html/about/team/team.html
func PagePaths(rawURL string) (htmlPath, textPath string, err error) {
	segments, err := sitesnap.URLPath(rawURL)
	if err != nil {
		return "", "", err
	}
	for i, seg := range segments {
		segments[i] = sanitizeSegment(seg)
	}
	dir := path.Join(segments...)
	last := segments[len(segments)-1]
	return path.Join(HTMLDir, dir, last+".html"), path.Join(TextDir, dir, last+".txt"), nil
}

// sanitizeSegment keeps a URL path segment from escaping its directory.
func sanitizeSegment(seg string) string {
	switch seg {
	case "", ".", "..":
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, seg)
}
