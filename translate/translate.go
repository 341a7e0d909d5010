// Package translate walks a document tree and emits SILE markup.
//
// Every node kind has a pair of handlers. The enter handler emits the opening
// markup and returns the closing markup, which the walk keeps on its own
// stack and hands to the leave handler once the children are done. Styles
// come from a style.Table: a node is formatted by the declaration of its kind
// followed by the declarations of its classes, closed in reverse order.
package translate

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"rst2sile/doctree"
	"rst2sile/style"
)

// Options control a single translation.
type Options struct {
	Styles *style.Table
	// UseDocutilsTOC renders "contents" topics as ordinary topics instead of
	// delegating the table of contents to SILE.
	UseDocutilsTOC bool
	// Packages are additional SILE package scripts loaded by the preamble.
	Packages []string
	// Language selects the labels used for docinfo fields and admonitions.
	Language language.Tag
}

// Translator holds the state of one translation run. It must not be reused
// for a second document.
type Translator struct {
	opts   Options
	log    *zap.Logger
	labels labelSet

	doc          []string
	sectionLevel int
	listDepth    int
	options      []*optionTable
	toc          bool
	used         bool
}

// New creates a translator for a single document.
func New(opts Options, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{
		opts:   opts,
		log:    log.Named("translate"),
		labels: labelsFor(opts.Language),
	}
}

// Document translates tree with a fresh translator.
func Document(tree *doctree.Node, opts Options, log *zap.Logger) (string, error) {
	return New(opts, log).Translate(tree)
}

// Translate walks the tree once and returns the generated SILE source.
func (t *Translator) Translate(tree *doctree.Node) (string, error) {
	if t.used {
		return "", errors.New("translator has already been used")
	}
	t.used = true
	if tree == nil {
		return "", errors.New("nil document tree")
	}
	if err := t.walk(tree); err != nil {
		return "", err
	}
	return strings.Join(t.doc, ""), nil
}

// TOCRequested reports whether the document delegated its table of contents
// to SILE, which needs a second run to resolve page numbers.
func (t *Translator) TOCRequested() bool {
	return t.toc
}

func (t *Translator) walk(n *doctree.Node) error {
	kind := n.Kind
	if kind < 0 || kind >= doctree.KindCount {
		kind = doctree.KindUnknown
	}
	h := dispatch[kind]

	pending, act, err := h.enter(t, n)
	if err != nil {
		return err
	}
	if act == skipNode {
		return nil
	}
	if act == descend {
		for _, c := range n.Children() {
			if err := t.walk(c); err != nil {
				return err
			}
		}
	}
	return h.leave(t, n, pending)
}

func (t *Translator) emit(parts ...string) {
	for _, s := range parts {
		if s != "" {
			t.doc = append(t.doc, s)
		}
	}
}

// classes compiles the styles of a node: its kind followed by each of its
// classes. Openers are concatenated in that order, closers in reverse.
func (t *Translator) classes(n *doctree.Node) (opener, closer string) {
	return t.selectors(append([]string{n.Kind.String()}, classSelectors(n)...)...)
}

// selectors compiles the styles of the given selectors in order.
func (t *Translator) selectors(sels ...string) (opener, closer string) {
	for _, sel := range sels {
		head, tail := style.Compile(t.opts.Styles.Lookup(sel))
		opener += head
		closer = tail + closer
	}
	return opener, closer
}

func classSelectors(n *doctree.Node) []string {
	out := make([]string, 0, len(n.Classes))
	for _, c := range n.Classes {
		out = append(out, "."+c)
	}
	return out
}
