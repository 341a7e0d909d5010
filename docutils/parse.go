// Package docutils reads the XML form of a docutils document tree, as
// written by rst2xml and the docutils "xml" writer.
package docutils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"rst2sile/doctree"
)

// Parse reads a docutils XML document. Whitespace between elements is
// dropped unless the element holds inline text.
func Parse(r io.Reader, log *zap.Logger) (*doctree.Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("docutils")

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse docutils XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("docutils XML has no root element")
	}
	if root.Tag != "document" {
		log.Warn("Root element is not a document", zap.String("tag", root.Tag))
	}

	p := parser{log: log}
	tree := p.element(root)
	log.Debug("Document parsed", zap.Int("elements", p.elements), zap.Int("unknown", p.unknown))
	return tree, nil
}

type parser struct {
	log      *zap.Logger
	elements int
	unknown  int
}

func (p *parser) element(el *etree.Element) *doctree.Node {
	p.elements++

	kind, ok := doctree.ParseKind(el.Tag)
	if !ok {
		p.unknown++
		p.log.Debug("Unknown element", zap.String("tag", el.Tag), zap.String("path", el.GetPath()))
	}

	n := doctree.New(kind)
	for _, a := range el.Attr {
		switch a.FullKey() {
		case "classes":
			n.Classes = strings.Fields(a.Value)
		case "ids":
			n.IDs = strings.Fields(a.Value)
		case "names":
			n.Names = strings.Fields(a.Value)
		case "xml:space":
		default:
			n.WithAttr(a.FullKey(), a.Value)
		}
	}

	for _, tok := range el.Child {
		switch c := tok.(type) {
		case *etree.Element:
			n.Append(p.element(c))
		case *etree.CharData:
			if !kind.IsTextElement() && strings.TrimSpace(c.Data) == "" {
				continue
			}
			n.Append(doctree.NewText(c.Data))
		}
	}
	return n
}

// Sniff reports whether the start of a file looks like docutils XML.
func Sniff(head []byte) bool {
	if bytes.Contains(head, []byte("docutils.dtd")) || bytes.Contains(head, []byte("Docutils Generic")) {
		return true
	}
	i := bytes.Index(head, []byte("<document"))
	if i < 0 || i+len("<document") >= len(head) {
		return false
	}
	switch head[i+len("<document")] {
	case ' ', '>', '\t', '\n', '\r':
		return true
	}
	return false
}
