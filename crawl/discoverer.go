package crawl

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/sitesnap"
)

// Mode selects how discovered URLs are arranged into a tree.
type Mode int

const (
	// ModeHierarchy makes each nested link a child of the first page that
	// linked to it.
	ModeHierarchy Mode = iota
	// ModePathTree inserts every discovered URL into a tree of path segments
	// below the root, creating intermediate nodes that were never visited.
	ModePathTree
)

// Order selects the traversal order of the work queue.
type Order int

const (
	BreadthFirst Order = iota
	DepthFirst
)

// ParseMode converts "hierarchy" or "pathtree" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "hierarchy":
		return ModeHierarchy, nil
	case "pathtree":
		return ModePathTree, nil
	}
	return 0, sitesnap.Errorf(sitesnap.EINVALID, "unknown discovery mode %q", s)
}

// ParseOrder converts "bfs" or "dfs" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "bfs":
		return BreadthFirst, nil
	case "dfs":
		return DepthFirst, nil
	}
	return 0, sitesnap.Errorf(sitesnap.EINVALID, "unknown traversal order %q", s)
}

// expectedPages sizes the visited set of a single discovery run.
const expectedPages = 10000

// Discoverer builds the page hierarchy of a site by following links that
// stay below a root path on the root URL's origin.
type Discoverer struct {
	Fetcher  sitesnap.Fetcher
	Links    sitesnap.LinkExtractor
	Blocked  []string // extensions never crawled; nil means the defaults
	Mode     Mode
	Order    Order
	Progress ProgressFunc
}

// Discover crawls from rootURL and returns the discovered tree rooted at the
// normalized rootURL. An empty rootPath means the path of rootURL.
//
// A page that cannot be fetched gets no children and the crawl continues.
// Discovery has no page or depth bound; it ends when no unvisited nested
// link remains or ctx is done.
func (d *Discoverer) Discover(ctx context.Context, rootURL, rootPath string) (*sitesnap.SiteNode, error) {
	start, err := url.Parse(strings.TrimSpace(rootURL))
	if err != nil || !sitesnap.IsHTTP(start) || start.Host == "" {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid root URL %q", rootURL)
	}
	normalized, err := sitesnap.NormalizeURL(nil, start.String())
	if err != nil {
		return nil, err
	}
	if rootPath == "" {
		rootPath = start.Path
	}
	rootPath = "/" + strings.Trim(rootPath, "/")

	blocked := d.Blocked
	if blocked == nil {
		blocked = sitesnap.DefaultBlockedExtensions()
	}

	root := &sitesnap.SiteNode{URL: normalized}
	visited := NewVisitedSet(expectedPages)
	queued := NewVisitedSet(expectedPages)
	queued.Add(root.URL)
	queue := []*sitesnap.SiteNode{root}
	var found []string

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var node *sitesnap.SiteNode
		if d.Order == DepthFirst {
			node = queue[len(queue)-1]
			queue = queue[:len(queue)-1]
		} else {
			node = queue[0]
			queue = queue[1:]
		}
		if !visited.Add(node.URL) {
			continue
		}

		d.Progress.emit(ProgressEvent{
			Type:      ProgressStarted,
			Completed: visited.Len() - 1,
			Total:     visited.Len() + len(queue),
			URL:       node.URL,
		})

		links, err := d.links(ctx, node.URL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.Progress.emit(ProgressEvent{
				Type:      ProgressFailed,
				Completed: visited.Len(),
				Total:     visited.Len() + len(queue),
				URL:       node.URL,
				Error:     err,
			})
			continue
		}

		var next []*sitesnap.SiteNode
		outside := 0
		for _, link := range links {
			u, err := url.Parse(link)
			if err != nil || !sitesnap.IsHTTP(u) || !sitesnap.SameOrigin(u, start) {
				continue
			}
			if sitesnap.HasExtension(link, blocked) {
				continue
			}
			if !sitesnap.IsNested(link, rootPath) {
				if link != root.URL {
					outside++
				}
				continue
			}
			if visited.Has(link) || !queued.Add(link) {
				continue
			}
			found = append(found, link)
			next = append(next, node.AddChild(link))
		}

		d.Progress.emit(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: visited.Len(),
			Total:     visited.Len() + len(queue) + len(next),
			URL:       node.URL,
			Links:     len(next),
			Outside:   outside,
		})

		slices.SortFunc(next, func(a, b *sitesnap.SiteNode) int {
			return strings.Compare(a.URL, b.URL)
		})
		if d.Order == DepthFirst {
			// Pushed in reverse so the smallest URL is popped first.
			slices.Reverse(next)
		}
		queue = append(queue, next...)
	}

	d.Progress.emit(ProgressEvent{
		Type:      ProgressFinished,
		Completed: visited.Len(),
		Total:     visited.Len(),
	})

	if d.Mode == ModePathTree {
		return BuildPathTree(root.URL, rootPath, found)
	}
	return root, nil
}

func (d *Discoverer) links(ctx context.Context, pageURL string) ([]string, error) {
	html, err := d.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return d.Links.ExtractLinks(html, pageURL)
}
