package translate

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"rst2sile/doctree"
	"rst2sile/sile"
)

// descriptionWidth is the column at which option descriptions are wrapped.
const descriptionWidth = 40

type optionRow struct {
	options     []string
	description string
}

// optionTable collects the rows of an option list. It is rendered as a
// whole when the list is left, since column widths depend on every row.
type optionTable struct {
	rows []*optionRow
}

func (t *Translator) currentOptions() *optionTable {
	if len(t.options) == 0 {
		return nil
	}
	return t.options[len(t.options)-1]
}

func (t *Translator) enterOptionList(*doctree.Node) (string, action, error) {
	t.options = append(t.options, &optionTable{})
	return "", descend, nil
}

func (t *Translator) enterOptionListItem(n *doctree.Node) (string, action, error) {
	table := t.currentOptions()
	if table == nil {
		t.log.Warn("Option list item outside of option list, dropping it")
		return "", skipNode, nil
	}
	table.rows = append(table.rows, &optionRow{})
	return "", descend, nil
}

func (t *Translator) currentRow(n *doctree.Node) *optionRow {
	table := t.currentOptions()
	if table == nil || len(table.rows) == 0 {
		t.log.Warn("Option content outside of option list item, dropping it", zap.Stringer("kind", n.Kind))
		return nil
	}
	return table.rows[len(table.rows)-1]
}

func (t *Translator) enterOption(n *doctree.Node) (string, action, error) {
	if row := t.currentRow(n); row != nil {
		row.options = append(row.options, n.AsText())
	}
	return "", skipNode, nil
}

func (t *Translator) enterDescription(n *doctree.Node) (string, action, error) {
	if row := t.currentRow(n); row != nil {
		row.description = strings.Join(wrap(n.AsText(), descriptionWidth), "\n")
	}
	return "", skipNode, nil
}

func (t *Translator) leaveOptionList(*doctree.Node, string) error {
	table := t.currentOptions()
	t.options = t.options[:len(t.options)-1]
	if table == nil || len(table.rows) == 0 {
		return nil
	}
	t.emit(table.render())
	return nil
}

// render lays the table out as two columns inside a verbatim environment.
// The description column starts two spaces after the widest option.
func (tab *optionTable) render() string {
	width := 0
	for _, row := range tab.rows {
		width = max(width, utf8.RuneCountInString(row.option()))
	}
	width += 2

	var sb strings.Builder
	sb.WriteString(sile.Env("verbatim"))
	for _, row := range tab.rows {
		option := row.option()
		if row.description == "" {
			sb.WriteString(sile.Escape(option))
			sb.WriteByte('\n')
			continue
		}
		for i, line := range strings.Split(row.description, "\n") {
			if i == 0 {
				sb.WriteString(sile.Escape(option))
				sb.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(option)))
			} else {
				sb.WriteString(strings.Repeat(" ", width))
			}
			sb.WriteString(sile.Escape(strings.TrimSpace(line)))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(sile.EndEnv("verbatim"))
	sb.WriteString("\n\n")
	return sb.String()
}

func (r *optionRow) option() string {
	return strings.Join(r.options, ", ")
}

// wrap fills words greedily into lines of at most width runes. Whitespace
// runs collapse to a single space and words longer than a line are split.
func wrap(text string, width int) []string {
	var (
		lines []string
		cur   []rune
	)
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) <= width {
			cur = append(cur, ' ')
			cur = append(cur, w...)
			continue
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = nil
		}
		for len(w) > width {
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		cur = w
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
