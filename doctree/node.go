// Package doctree defines the document tree consumed by the translator.
//
// A tree is built once by a front end (docutils XML, Markdown) and is not
// modified afterwards. Every node except the root has exactly one parent and
// its position among siblings does not change.
package doctree

import (
	"slices"
	"strings"
)

// Node is a single element of the document tree.
type Node struct {
	Kind    Kind
	Text    string            // content of KindText nodes
	Attrs   map[string]string // named attributes (refid, refuri, uri, enumtype, ...)
	Classes []string
	IDs     []string
	Names   []string

	children []*Node
	parent   *Node
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// New creates an element of the given kind and attaches children to it.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	return n.Append(children...)
}

// Append attaches children to the node, making it their parent. It is meant
// to be used while building the tree.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// WithAttr sets a named attribute and returns the node.
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// WithClasses appends class names and returns the node.
func (n *Node) WithClasses(classes ...string) *Node {
	n.Classes = append(n.Classes, classes...)
	return n
}

// WithIDs appends ids and returns the node.
func (n *Node) WithIDs(ids ...string) *Node {
	n.IDs = append(n.IDs, ids...)
	return n
}

// Parent returns the parent node or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the ordered children of the node. The returned slice
// must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Index returns the position of the node among its parent's children or -1
// for the root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// Attr returns the value of a named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrOr returns the value of a named attribute or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attrs[name]; ok {
		return v
	}
	return def
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// FirstChildOf returns the first direct child of the given kind.
func (n *Node) FirstChildOf(kind Kind) *Node {
	for _, c := range n.children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// AsText returns the text content of the subtree. Inline content is
// concatenated, block content is separated by blank lines.
func (n *Node) AsText() string {
	switch {
	case n.Kind == KindText:
		return n.Text
	case n.Kind == KindOptionArgument:
		return n.AttrOr("delimiter", " ") + n.joinChildren("")
	case n.Kind == KindOption, n.Kind.IsTextElement():
		return n.joinChildren("")
	default:
		return n.joinChildren("\n\n")
	}
}

func (n *Node) joinChildren(sep string) string {
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		parts = append(parts, c.AsText())
	}
	return strings.Join(parts, sep)
}

// Walk calls fn for every node of the subtree in document order. When fn
// returns false the children of that node are not visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
