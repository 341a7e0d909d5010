// Package markdown converts CommonMark into the docutils node tree, so
// Markdown sources are typeset like reStructuredText ones.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"rst2sile/doctree"
)

// maxSectionLevel is the deepest heading that opens a section. Deeper
// headings become rubrics.
const maxSectionLevel = 3

// Parse reads a Markdown document. Headings open nested sections by level,
// the same way docutils nests reStructuredText sections.
func Parse(r io.Reader, log *zap.Logger) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read markdown: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := &builder{src: src, log: log.Named("markdown"), ids: make(map[string]int)}
	return b.document(doc), nil
}

type builder struct {
	src []byte
	log *zap.Logger
	ids map[string]int
}

type level struct {
	node  *doctree.Node
	level int
}

func (b *builder) document(doc ast.Node) *doctree.Node {
	root := doctree.New(doctree.KindDocument)

	// sections nest under the closest preceding heading of a lower level
	stack := []level{{node: root}}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxSectionLevel {
			if block := b.block(n); block != nil {
				stack[len(stack)-1].node.Append(block)
			}
			continue
		}

		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		section := b.section(h)
		stack[len(stack)-1].node.Append(section)
		stack = append(stack, level{node: section, level: h.Level})
	}
	return root
}

func (b *builder) section(h *ast.Heading) *doctree.Node {
	title := doctree.New(doctree.KindTitle, b.inlines(h)...)
	name := strings.TrimSpace(title.AsText())

	section := doctree.New(doctree.KindSection, title).WithIDs(b.uniqueID(name))
	section.Names = []string{strings.ToLower(name)}
	return section
}

// uniqueID turns a heading into an id, numbering repeated headings.
func (b *builder) uniqueID(name string) string {
	id := slug.Make(name)
	if id == "" {
		id = "section"
	}
	b.ids[id]++
	if n := b.ids[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}

func (b *builder) blocks(parent ast.Node) []*doctree.Node {
	var out []*doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if block := b.block(n); block != nil {
			out = append(out, block)
		}
	}
	return out
}

func (b *builder) block(n ast.Node) *doctree.Node {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return doctree.New(doctree.KindParagraph, b.inlines(n)...)
	case *ast.Heading:
		return doctree.New(doctree.KindRubric, b.inlines(n)...)
	case *ast.ThematicBreak:
		return doctree.New(doctree.KindTransition)
	case *ast.CodeBlock:
		return doctree.New(doctree.KindLiteralBlock, doctree.NewText(b.lines(n)))
	case *ast.FencedCodeBlock:
		return b.fence(n)
	case *ast.Blockquote:
		return doctree.New(doctree.KindBlockQuote, b.blocks(n)...)
	case *ast.List:
		return b.list(n)
	case *ast.ListItem:
		return doctree.New(doctree.KindListItem, b.blocks(n)...)
	case *ast.HTMLBlock:
		content := b.lines(n)
		if n.HasClosure() {
			content += string(n.ClosureLine.Value(b.src))
		}
		return doctree.New(doctree.KindRaw, doctree.NewText(content)).WithAttr("format", "html")
	}
	b.log.Warn("Unsupported markdown block, dropping it", zap.String("kind", n.Kind().String()))
	return nil
}

// fence keeps the info string as classes. A "sile" fence is passed to the
// typesetter untouched.
func (b *builder) fence(n *ast.FencedCodeBlock) *doctree.Node {
	lang := strings.TrimSpace(string(n.Language(b.src)))
	content := b.lines(n)
	if strings.EqualFold(lang, "sile") {
		return doctree.New(doctree.KindRaw, doctree.NewText(content)).WithAttr("format", "sile")
	}
	block := doctree.New(doctree.KindLiteralBlock, doctree.NewText(strings.TrimSuffix(content, "\n")))
	if lang != "" {
		block.WithClasses("code", lang)
	}
	return block
}

func (b *builder) list(n *ast.List) *doctree.Node {
	var list *doctree.Node
	if n.IsOrdered() {
		list = doctree.New(doctree.KindEnumeratedList).WithAttr("enumtype", "arabic")
		if n.Start != 1 {
			list.WithAttr("start", strconv.Itoa(n.Start))
		}
	} else {
		list = doctree.New(doctree.KindBulletList).WithAttr("bullet", string(n.Marker))
	}
	return list.Append(b.blocks(n)...)
}

func (b *builder) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.src))
	}
	return buf.String()
}

func (b *builder) inlines(parent ast.Node) []*doctree.Node {
	var out []*doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, b.inline(n)...)
	}
	return out
}

func (b *builder) inline(n ast.Node) []*doctree.Node {
	switch n := n.(type) {
	case *ast.Text:
		out := []*doctree.Node{doctree.NewText(string(n.Segment.Value(b.src)))}
		if n.SoftLineBreak() || n.HardLineBreak() {
			out = append(out, doctree.NewText("\n"))
		}
		return out
	case *ast.String:
		return []*doctree.Node{doctree.NewText(string(n.Value))}
	case *ast.CodeSpan:
		return []*doctree.Node{doctree.New(doctree.KindLiteral, b.inlines(n)...)}
	case *ast.Emphasis:
		kind := doctree.KindEmphasis
		if n.Level >= 2 {
			kind = doctree.KindStrong
		}
		return []*doctree.Node{doctree.New(kind, b.inlines(n)...)}
	case *ast.Link:
		return []*doctree.Node{reference(string(n.Destination), b.inlines(n)...)}
	case *ast.AutoLink:
		label := doctree.NewText(string(n.Label(b.src)))
		return []*doctree.Node{reference(string(n.URL(b.src)), label)}
	case *ast.Image:
		img := doctree.New(doctree.KindImage).WithAttr("uri", string(n.Destination))
		if alt := altText(b.inlines(n)); alt != "" {
			img.WithAttr("alt", alt)
		}
		return []*doctree.Node{img}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(b.src))
		}
		return []*doctree.Node{doctree.New(doctree.KindRaw, doctree.NewText(buf.String())).WithAttr("format", "html")}
	}
	b.log.Warn("Unsupported markdown inline, keeping its text", zap.String("kind", n.Kind().String()))
	return b.inlines(n)
}

// reference links to an anchor inside the document or to an external URI.
func reference(dest string, children ...*doctree.Node) *doctree.Node {
	ref := doctree.New(doctree.KindReference, children...)
	if id, ok := strings.CutPrefix(dest, "#"); ok {
		return ref.WithAttr("refid", id)
	}
	return ref.WithAttr("refuri", dest)
}

func altText(nodes []*doctree.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.AsText())
	}
	return sb.String()
}
