package doctree

import (
	"sort"
	"strings"

	"rst2sile/utils/debug"
)

// String returns an indented dump of the subtree for debugging.
func (n *Node) String() string {
	tw := debug.NewTreeWriter()
	dump(tw, n, 0)
	return tw.String()
}

func dump(tw *debug.TreeWriter, n *Node, depth int) {
	if n.Kind == KindText {
		tw.TextBlock(depth, n.Kind.String(), n.Text)
		return
	}

	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	if len(n.IDs) > 0 {
		sb.WriteString(" ids=")
		sb.WriteString(strings.Join(n.IDs, ","))
	}
	if len(n.Classes) > 0 {
		sb.WriteString(" classes=")
		sb.WriteString(strings.Join(n.Classes, ","))
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(n.Attrs[k])
	}
	tw.Line(depth, "%s", sb.String())

	for _, c := range n.children {
		dump(tw, c, depth+1)
	}
}
