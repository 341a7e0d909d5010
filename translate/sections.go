package translate

import (
	"rst2sile/doctree"
	"rst2sile/sile"
	"rst2sile/style"
)

// sectionCommands maps section depth to the book class command for its
// title. Depth 0 is the document title.
var sectionCommands = [...]string{1: "chapter", 2: "section", 3: "subsection"}

func (t *Translator) enterDocument(n *doctree.Node) (string, action, error) {
	preamble, err := t.preamble()
	if err != nil {
		return "", skipNode, err
	}
	_, closer := style.Compile(t.opts.Styles.Lookup("body"))
	t.emit(preamble)
	return closer, descend, nil
}

func (t *Translator) leaveDocument(_ *doctree.Node, pending string) error {
	t.emit(pending, sile.EndEnv("document"), "\n\n")
	return nil
}

func (t *Translator) enterSection(*doctree.Node) (string, action, error) {
	t.sectionLevel++
	return "", descend, nil
}

func (t *Translator) leaveSection(*doctree.Node, string) error {
	t.sectionLevel--
	return nil
}

// enterTitle picks the title style from the parent: topics, sidebars,
// tables and admonitions style their own titles, everything else is the
// document title or a sectioning command.
func (t *Translator) enterTitle(n *doctree.Node) (string, action, error) {
	parent := n.Parent()

	var opener, closer string
	switch {
	case parent != nil && (parent.Kind == doctree.KindAdmonition || parent.Kind.IsAdmonition()):
		opener, closer = t.selectors(append([]string{"admonition-title"}, classSelectors(n)...)...)
	case parent != nil && parent.Kind != doctree.KindSection && parent.Kind != doctree.KindDocument:
		opener, closer = t.selectors(append([]string{parent.Kind.String() + "-title"}, classSelectors(n)...)...)
	case t.sectionLevel == 0:
		opener, closer = t.classes(n)
	case t.sectionLevel < len(sectionCommands):
		head, tail := t.selectors(classSelectors(n)...)
		opener = sile.Command(sectionCommands[t.sectionLevel]) + head
		closer = tail + "}"
	default:
		return "", skipNode, &StructureError{
			Kind:   n.Kind,
			Depth:  t.sectionLevel,
			Reason: "sections nest deeper than subsections",
		}
	}
	t.emit(opener)

	if refid, ok := n.Attr("refid"); ok {
		t.emit(destination(refid))
	}
	if parent != nil && parent.Kind == doctree.KindSection {
		for _, id := range parent.IDs {
			t.emit(destination(id))
		}
	}
	return closer, descend, nil
}

func (t *Translator) enterSubtitle(n *doctree.Node) (string, action, error) {
	if parent := n.Parent(); t.sectionLevel > 0 && (parent == nil || parent.Kind == doctree.KindSection || parent.Kind == doctree.KindDocument) {
		return "", skipNode, &StructureError{
			Kind:   n.Kind,
			Depth:  t.sectionLevel,
			Reason: "subtitles are only supported for the document",
		}
	}
	return t.enterClasses(n)
}
