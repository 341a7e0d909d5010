package translate

import (
	"strings"

	"go.uber.org/zap"

	"rst2sile/doctree"
	"rst2sile/sile"
	"rst2sile/style"
)

func (t *Translator) enterClasses(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(opener)
	return closer, descend, nil
}

func (t *Translator) enterNothing(*doctree.Node) (string, action, error) {
	return "", descend, nil
}

// enterKill drops a node together with everything below it.
func (t *Translator) enterKill(*doctree.Node) (string, action, error) {
	return "", skipNode, nil
}

func (t *Translator) enterUnknown(n *doctree.Node) (string, action, error) {
	t.log.Warn("Unsupported node, dropping it", zap.Stringer("kind", n.Kind), zap.Int("children", len(n.Children())))
	return "", skipNode, nil
}

func (t *Translator) leaveClose(_ *doctree.Node, pending string) error {
	t.emit(pending)
	return nil
}

func (t *Translator) leaveBlock(_ *doctree.Node, pending string) error {
	t.emit(pending, "\n\n")
	return nil
}

func (t *Translator) enterText(n *doctree.Node) (string, action, error) {
	t.emit(sile.Escape(n.Text))
	return "", skipNode, nil
}

func (t *Translator) wrapped(n *doctree.Node, command string) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(command, opener)
	return closer + "}", descend, nil
}

func (t *Translator) enterEmphasis(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("em"))
}

func (t *Translator) enterStrong(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("font", sile.A("weight", "800")))
}

func (t *Translator) enterSubscript(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("lower", sile.A("height", ".3em")))
}

func (t *Translator) enterSuperscript(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("raise", sile.A("height", ".5em")))
}

func (t *Translator) enterFootnoteReference(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("raise", sile.A("height", ".5em")))
}

func (t *Translator) enterFootnote(n *doctree.Node) (string, action, error) {
	return t.wrapped(n, sile.Command("footnote"))
}

// enterVerbatim keeps literal blocks in a verbatim environment. Styles of the
// node wrap the environment.
func (t *Translator) enterVerbatim(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(opener, sile.Env("verbatim"))
	return sile.EndEnv("verbatim") + closer, descend, nil
}

func (t *Translator) enterTransition(*doctree.Node) (string, action, error) {
	t.emit("\n\n", sile.Call("hrule", sile.A("width", "100%fw"), sile.A("height", "0.5pt")), "\n\n")
	return "", skipNode, nil
}

// enterRaw passes SILE content through untouched. Raw content for any other
// format is dropped.
func (t *Translator) enterRaw(n *doctree.Node) (string, action, error) {
	for _, f := range strings.Fields(n.AttrOr("format", "")) {
		if strings.EqualFold(f, "sile") {
			t.emit(n.AsText())
			return "", skipNode, nil
		}
	}
	t.log.Debug("Dropping raw content", zap.String("format", n.AttrOr("format", "")))
	return "", skipNode, nil
}

func (t *Translator) leaveLine(_ *doctree.Node, pending string) error {
	t.emit(pending, `\break`, "\n")
	return nil
}

func (t *Translator) leaveFieldName(_ *doctree.Node, pending string) error {
	t.emit(": ", pending)
	return nil
}

func (t *Translator) leaveTerm(_ *doctree.Node, pending string) error {
	t.emit(pending, `\break `)
	return nil
}

func (t *Translator) leaveLabel(_ *doctree.Node, pending string) error {
	t.emit(".  ", pending)
	return nil
}

func (t *Translator) enterClassifier(n *doctree.Node) (string, action, error) {
	t.emit(" : ")
	return t.enterClasses(n)
}

// enterDocinfoField renders a bibliographic field as "Label: value" on its
// own line.
func (t *Translator) enterDocinfoField(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	t.emit(opener, sile.Escape(t.labels.get(n.Kind.String())), ": ", sile.Escape(n.AsText()), closer, `\break `)
	return "", skipNode, nil
}

// enterAdmonition opens a specific admonition (note, warning, ...) with the
// generic admonition style, then its own, then its classes, and starts it
// with a localized label.
func (t *Translator) enterAdmonition(n *doctree.Node) (string, action, error) {
	sels := append([]string{doctree.KindAdmonition.String(), n.Kind.String()}, classSelectors(n)...)
	opener, closer := t.selectors(sels...)
	head, tail := style.Compile(t.opts.Styles.Lookup("admonition-title"))
	t.emit(opener, head, sile.Escape(t.labels.get(n.Kind.String())), tail, "\n\n")
	return closer, descend, nil
}
