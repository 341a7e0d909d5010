package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "name: value" pair. Value keeps the CSS text of the
// value as written, quotes included.
type Declaration struct {
	Name  string
	Value string
}

// Rule represents a single CSS rule: a comma separated selector list sharing
// one declaration block.
type Rule struct {
	Selectors    []string      // Selectors as written, trimmed, in source order
	Declarations []Declaration // Declarations in source order
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Source   string   // Name of the stylesheet source, for diagnostics
	Rules    []Rule   // Plain rules in source order
	Warnings []string // Warnings for unsupported features
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
		// Add blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", strings.Join(rule.Selectors, ", "))
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", d.Name, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
