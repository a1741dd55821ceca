package extractor

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is one element of a page snapshot. Lookups never fail; absent content
// reads as the empty string.
type Node interface {
	// Select returns the descendant nodes matching the selector.
	Select(selector string) []Node
	// Text returns the trimmed text content of the node.
	Text() string
	// Attr returns the value of the named attribute, or "".
	Attr(name string) string
}

// PageSnapshot is a read-only view of a captured page. Implementations must
// be safe for sequential reuse; an extraction pass never mutates the
// snapshot.
type PageSnapshot interface {
	// Select returns the top-level nodes matching the selector.
	Select(selector string) []Node
	// URL returns the address the page was captured from.
	URL() *url.URL
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n *goqueryNode) Select(selector string) []Node {
	return wrapSelection(n.sel.Find(selector))
}

func (n *goqueryNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *goqueryNode) Attr(name string) string {
	val, _ := n.sel.Attr(name)
	return strings.TrimSpace(val)
}

type documentSnapshot struct {
	doc     *goquery.Document
	pageURL *url.URL
}

// NewSnapshot parses HTML into a page snapshot. pageURL is the address the
// page was captured from and drives source detection and query resolution.
func NewSnapshot(r io.Reader, pageURL string) (PageSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return &documentSnapshot{doc: doc, pageURL: u}, nil
}

func (s *documentSnapshot) Select(selector string) []Node {
	return wrapSelection(s.doc.Find(selector))
}

func (s *documentSnapshot) URL() *url.URL {
	return s.pageURL
}

func wrapSelection(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &goqueryNode{sel: s})
	})
	return nodes
}

// selectFirst walks a selector fallback chain and returns the first non-empty
// node set.
func selectFirst(snap PageSnapshot, selectors ...string) []Node {
	for _, sel := range selectors {
		if nodes := snap.Select(sel); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// firstText walks nested selector fallbacks under a node and returns the
// first non-empty text.
func firstText(node Node, selectors ...string) string {
	for _, sel := range selectors {
		for _, child := range node.Select(sel) {
			if text := child.Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstAttr walks nested selector fallbacks under a node and returns the
// first non-empty attribute value.
func firstAttr(node Node, attr string, selectors ...string) string {
	for _, sel := range selectors {
		for _, child := range node.Select(sel) {
			if val := child.Attr(attr); val != "" {
				return val
			}
		}
	}
	return ""
}
