package htmltomarkdown

import (
	"bytes"

	"golang.org/x/net/html"
)

// NodeKind discriminates the node types the converter cares about.
type NodeKind int

// Node kinds produced by the DOM adapter.
const (
	KindElement NodeKind = iota
	KindText
	KindComment
)

// Node is the minimal read-only view of a parsed HTML tree. The
// converter is written entirely against this interface so the parser
// stays swappable; the tree is owned by the parser and never mutated.
type Node interface {
	Kind() NodeKind
	Tag() string
	Attr(key string) string
	Children() []Node
	Text() string
}

// htmlNode adapts *html.Node from golang.org/x/net/html.
type htmlNode struct {
	n *html.Node
}

func wrap(n *html.Node) Node {
	return htmlNode{n: n}
}

func (h htmlNode) Kind() NodeKind {
	switch h.n.Type {
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	default:
		return KindElement
	}
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Attr(key string) string {
	for _, a := range h.n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode, html.TextNode, html.CommentNode:
			out = append(out, htmlNode{n: c})
		}
	}
	return out
}

func (h htmlNode) Text() string {
	if h.n.Type == html.TextNode {
		return h.n.Data
	}
	return ""
}

// RenderHTML serializes the underlying subtree back to HTML. Used by
// the table renderer when a table cannot be flattened to markdown.
func (h htmlNode) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, h.n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rawHTML recovers the original markup for a node when the adapter
// supports it. Falls back to the node's text content otherwise.
func rawHTML(n Node) string {
	if r, ok := n.(interface{ RenderHTML() (string, error) }); ok {
		if s, err := r.RenderHTML(); err == nil {
			return s
		}
	}
	return fullText(n)
}

// fullText concatenates every descendant text node verbatim.
func fullText(n Node) string {
	if n.Kind() == KindText {
		return n.Text()
	}
	var buf bytes.Buffer
	for _, c := range n.Children() {
		buf.WriteString(fullText(c))
	}
	return buf.String()
}
