// Package style resolves stylesheet selectors to declarations and compiles
// declarations into SILE markup.
package style

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"rst2sile/css"
)

const fontPrefix = "font-"

// Canonical returns the canonical property name: the "font-" prefix is
// stripped so that "font-weight" and "weight" are the same property.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(name, fontPrefix); ok && rest != "" {
		return rest
	}
	return name
}

// Source is one stylesheet to load.
type Source struct {
	Name string
	Data []byte
}

// Table maps selectors (lower-cased element names or ".class" names) to
// declarations. It is built once and is read-only afterwards.
type Table struct {
	styles map[string]Declaration
	sheets []*css.Stylesheet
}

// New builds a table from stylesheet sources. Later sources override earlier
// ones per selector: the whole declaration set is replaced, properties are
// not merged.
func New(sources []Source, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("style")

	t := &Table{styles: make(map[string]Declaration)}
	parser := css.NewParser(log)

	for _, src := range sources {
		sheet := parser.Parse(src.Data, src.Name)
		for _, w := range sheet.Warnings {
			log.Debug("Stylesheet warning", zap.String("source", src.Name), zap.String("warning", w))
		}
		t.sheets = append(t.sheets, sheet)

		for _, rule := range sheet.Rules {
			var decl Declaration
			for _, d := range rule.Declarations {
				decl.Set(d.Name, d.Value)
			}
			for _, sel := range rule.Selectors {
				t.styles[strings.ToLower(sel)] = decl
			}
		}
		log.Debug("Stylesheet loaded", zap.String("source", src.Name), zap.Int("rules", len(sheet.Rules)))
	}
	return t
}

// Load reads stylesheets from files in the given order and builds a table.
func Load(paths []string, log *zap.Logger) (*Table, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet: %w", err)
		}
		sources = append(sources, Source{Name: p, Data: data})
	}
	return New(sources, log), nil
}

// Lookup returns the declaration for a selector. Unknown selectors resolve
// to an empty declaration.
func (t *Table) Lookup(selector string) Declaration {
	if t == nil {
		return Declaration{}
	}
	return t.styles[strings.ToLower(selector)]
}

// Selectors returns the number of selectors known to the table.
func (t *Table) Selectors() int {
	if t == nil {
		return 0
	}
	return len(t.styles)
}

// Names returns the known selectors in natural order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Dump returns the parsed stylesheets as CSS text, for debug reports.
func (t *Table) Dump() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, sheet := range t.sheets {
		fmt.Fprintf(&sb, "/* %s */\n", sheet.Source)
		sheet.WriteTo(&sb) //nolint:errcheck
		sb.WriteString("\n")
	}
	return sb.String()
}
