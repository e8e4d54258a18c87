package sitesnap

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
)

// SiteNode is a page in a discovered site hierarchy.
// URL is absolute and normalized. Children are sorted by URL.
type SiteNode struct {
	URL      string
	Children []*SiteNode
}

// Child returns the direct child with the given URL, or nil.
func (n *SiteNode) Child(url string) *SiteNode {
	for _, c := range n.Children {
		if c.URL == url {
			return c
		}
	}
	return nil
}

// AddChild returns the direct child with url, creating it if missing.
// Children stay sorted.
func (n *SiteNode) AddChild(url string) *SiteNode {
	if c := n.Child(url); c != nil {
		return c
	}
	c := &SiteNode{URL: url}
	n.Children = append(n.Children, c)
	n.SortChildren()
	return c
}

// SortChildren orders direct children lexicographically by URL.
func (n *SiteNode) SortChildren() {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].URL < n.Children[j].URL
	})
}

// Len returns the number of nodes in the subtree rooted at n.
func (n *SiteNode) Len() int {
	total := 1
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

// MarshalJSON encodes the node as a single-key object: {"url": {children}}.
func (n *SiteNode) MarshalJSON() ([]byte, error) {
	return Structure{n}.MarshalJSON()
}

// Structure is the top level of a structure file: one or more root nodes.
// It encodes as a nested JSON object keyed by URL, leaves being {}.
// Key order is preserved in both directions.
type Structure []*SiteNode

// MarshalJSON implements json.Marshaler.
func (s Structure) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodes(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNodes(buf *bytes.Buffer, nodes []*SiteNode) error {
	buf.WriteByte('{')
	for i, n := range nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n.URL)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeNodes(buf, n.Children); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Structure) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	nodes, err := readNodes(dec)
	if err != nil {
		return Errorf(EINVALID, "invalid structure: %v", err)
	}
	*s = nodes
	return nil
}

func readNodes(dec *json.Decoder) ([]*SiteNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		// Scalars such as null are treated as leaves.
		return nil, nil
	}
	if delim != '{' {
		return nil, Errorf(EINVALID, "unexpected %v", delim)
	}

	var nodes []*SiteNode
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		children, err := readNodes(dec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &SiteNode{URL: key, Children: children})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Walk visits every node of s in pre-order, stopping at the first error.
// A nil error from fn continues the walk.
func (s Structure) Walk(ctx context.Context, fn func(ctx context.Context, n *SiteNode) error) error {
	for _, n := range s {
		if err := walkNode(ctx, n, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(ctx context.Context, n *SiteNode, fn func(ctx context.Context, n *SiteNode) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(ctx, n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walkNode(ctx, c, fn); err != nil {
			return err
		}
	}
	return nil
}

// URLs returns every URL in s in pre-order.
func (s Structure) URLs() []string {
	var urls []string
	_ = s.Walk(context.Background(), func(_ context.Context, n *SiteNode) error {
		urls = append(urls, n.URL)
		return nil
	})
	return urls
}
