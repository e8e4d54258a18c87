package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/sitesnap"
	"golang.org/x/net/html"
)

// renderer converts a DOM subtree into structured text lines.
// It holds no state between calls; Render is a pure function of its input.
type renderer struct {
	base   *url.URL
	roles  map[string]sitesnap.TagRole
	filter *sitesnap.PhraseFilter
}

// line is a rendered line plus whether it came from bare text, which lets
// contiguous runs of text stay together in one block.
type line struct {
	sitesnap.TextLine
	loose bool
}

// Render renders n and its descendants.
func (r *renderer) Render(n *html.Node) []sitesnap.TextLine {
	rendered := r.render(n, 0)
	lines := make([]sitesnap.TextLine, len(rendered))
	for i, l := range rendered {
		lines[i] = l.TextLine
	}
	return lines
}

func (r *renderer) role(n *html.Node) sitesnap.TagRole {
	return r.roles[strings.ToLower(n.Data)]
}

func (r *renderer) render(n *html.Node, depth int) []line {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" || r.filter.Match(text) {
			return nil
		}
		return []line{{TextLine: sitesnap.TextLine{Depth: depth, Text: text}, loose: true}}
	case html.DocumentNode:
		return r.renderChildren(n, depth)
	case html.ElementNode:
	default:
		return nil
	}

	switch r.role(n) {
	case sitesnap.RoleSkip:
		return nil
	case sitesnap.RoleHeading:
		text := r.inline(n)
		if text == "" {
			return nil
		}
		underline := strings.Repeat("-", utf8.RuneCountInString(text))
		return []line{
			{TextLine: sitesnap.TextLine{Depth: depth, Text: text}},
			{TextLine: sitesnap.TextLine{Depth: depth, Text: underline, Attached: true}},
		}
	case sitesnap.RoleParagraph:
		return r.block(depth, r.inline(n))
	case sitesnap.RoleControl:
		text := r.inline(n)
		if text == "" {
			return nil
		}
		return r.block(depth, "(button) "+text+" (button)")
	case sitesnap.RoleList:
		var out []line
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || r.role(c) != sitesnap.RoleListItem {
				continue
			}
			item := r.render(c, depth+1)
			if len(item) > 0 && len(out) > 0 {
				item[0].Attached = true
			}
			out = append(out, item...)
		}
		return out
	case sitesnap.RoleListItem:
		text := r.inline(n)
		if text == "" {
			return nil
		}
		return r.block(depth, "- "+text)
	default:
		return r.renderChildren(n, depth)
	}
}

// renderChildren concatenates the rendering of n's children. Consecutive
// bare text lines are attached to each other; any non-transparent element
// in between breaks the run.
func (r *renderer) renderChildren(n *html.Node, depth int) []line {
	var out []line
	prevLoose := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines := r.render(c, depth)
		if c.Type == html.ElementNode && r.role(c) != sitesnap.RoleTransparent {
			prevLoose = false
		}
		if len(lines) == 0 {
			continue
		}
		if prevLoose && lines[0].loose {
			lines[0].Attached = true
		}
		prevLoose = lines[len(lines)-1].loose
		out = append(out, lines...)
	}
	return out
}

func (r *renderer) block(depth int, text string) []line {
	if text == "" {
		return nil
	}
	return []line{{TextLine: sitesnap.TextLine{Depth: depth, Text: text}}}
}

// inline flattens the text of n, annotating anchors as "text (url)".
// Repeated annotations within n are emitted once.
func (r *renderer) inline(n *html.Node) string {
	// A tag wrapped by an anchor is annotated as a whole.
	if a := enclosingAnchor(n); a != nil {
		if link, ok := r.anchorURL(a); ok {
			return annotate(textContent(n), link)
		}
	}

	var parts []string
	seen := make(map[string]bool)
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				parts = append(parts, text)
			}
			return
		case html.ElementNode:
		default:
			return
		}
		if c.Data == "a" {
			if link, ok := r.anchorURL(c); ok {
				s := annotate(textContent(c), link)
				if !seen[s] {
					seen[s] = true
					parts = append(parts, s)
				}
				return
			}
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return strings.Join(parts, " ")
}

// anchorURL returns the absolute target of an anchor with a usable href.
func (r *renderer) anchorURL(a *html.Node) (string, bool) {
	href, ok := attr(a, "href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	link, err := resolveHref(r.base, href)
	if err != nil {
		return "", false
	}
	return link, true
}

func annotate(text, link string) string {
	if text == "" {
		return "(" + link + ")"
	}
	return text + " (" + link + ")"
}

// enclosingAnchor returns the nearest ancestor anchor of n, or nil.
func enclosingAnchor(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "a" {
			if _, ok := attr(p, "href"); ok {
				return p
			}
		}
	}
	return nil
}

// textContent joins the trimmed text nodes under n with single spaces.
func textContent(n *html.Node) string {
	var parts []string
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			if text := strings.TrimSpace(c.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
