package translate

import (
	"go.uber.org/zap"

	"rst2sile/doctree"
	"rst2sile/sile"
	"rst2sile/style"
)

func destination(name string) string {
	return sile.Command("pdf:destination", sile.A("name", sile.Quote(name))) + "}"
}

// enterReference links to an external URI or to an internal destination. A
// reference with neither is rendered as plain styled text.
func (t *Translator) enterReference(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(opener)
	if uri, ok := n.Attr("refuri"); ok {
		t.emit(sile.Command("pdf:link", sile.A("dest", sile.Quote(uri)), sile.A("external", "true")))
		return "}" + closer, descend, nil
	}
	if id, ok := n.Attr("refid"); ok {
		t.emit(sile.Command("pdf:link", sile.A("dest", sile.Quote(id))))
		return "}" + closer, descend, nil
	}
	t.log.Debug("Reference without target", zap.String("text", n.AsText()))
	return closer, descend, nil
}

// enterTarget marks every id of the node, and its refid, as a destination.
func (t *Translator) enterTarget(n *doctree.Node) (string, action, error) {
	for _, id := range n.IDs {
		t.emit(destination(id))
	}
	if refid, ok := n.Attr("refid"); ok {
		t.emit(destination(refid))
	}
	return "", descend, nil
}

func (t *Translator) enterImage(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	args := []sile.Arg{sile.A("src", sile.Quote(n.AttrOr("uri", "")))}
	if w, ok := n.Attr("width"); ok && w != "" {
		args = append(args, sile.A("width", style.ImageWidth(w)))
	}
	if h, ok := n.Attr("height"); ok && h != "" {
		args = append(args, sile.A("height", h))
	}
	t.emit(opener, sile.Command("img", args...))
	return "}" + closer, descend, nil
}

// tocItems maps the table of contents hooks of SILE to the styles that
// format them.
var tocItems = []struct{ command, style string }{
	{"tableofcontents:headerfont", "toc-header"},
	{"tableofcontents:level1item", "toc-l1"},
	{"tableofcontents:level2item", "toc-l2"},
	{"tableofcontents:level3item", "toc-l3"},
}

// enterTopic hands a "contents" topic over to SILE, which builds the table
// of contents itself. The generated entries of the topic are skipped.
func (t *Translator) enterTopic(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(opener)
	if !n.HasClass("contents") || t.opts.UseDocutilsTOC {
		return closer, descend, nil
	}

	title := ""
	if tn := n.FirstChildOf(doctree.KindTitle); tn != nil {
		title = tn.AsText()
	}
	t.emit(sile.Command("define", sile.A("command", "tableofcontents:title")), sile.Escape(title), "}")
	for _, item := range tocItems {
		head, tail := style.Compile(t.opts.Styles.Lookup(item.style))
		t.emit(sile.Command("define", sile.A("command", item.command)), head, `\process\break`, tail, "\n", "}")
	}
	t.toc = true
	return `\tableofcontents` + closer, skipChildren, nil
}
