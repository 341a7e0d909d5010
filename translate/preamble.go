package translate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"

	"rst2sile/sile"
	"rst2sile/style"
)

// builtinPackages are the SILE packages every document needs for the
// commands the translator emits.
var builtinPackages = []string{"verbatim", "color", "rules", "pdf", "image", "raiselower"}

const preambleText = `\begin[class=book]{document}
{{- range .Builtin }}
\script[src=packages/{{ . }}]
{{- end }}
\define[command="verbatim:font"]{\font{{ .VerbatimFont }}}
\set[parameter=document.parskip,value=12pt]
\set[parameter=document.parindent,value=0pt]
{{- range .Scripts | uniq }}
\script[src={{ . }}]
{{- end }}
{{ .Body }}
`

var preambleTmpl = template.Must(template.New("preamble").Funcs(sprig.FuncMap()).Parse(preambleText))

type preambleValues struct {
	Builtin      []string
	VerbatimFont string
	Scripts      []string
	Body         string
}

func (t *Translator) preamble() (string, error) {
	body, _ := style.Compile(t.opts.Styles.Lookup("body"))
	values := preambleValues{
		Builtin:      builtinPackages,
		VerbatimFont: sile.FormatArgs(style.FontArgs(t.opts.Styles.Lookup("verbatim"))...),
		Scripts:      t.opts.Packages,
		Body:         body,
	}

	buf := new(bytes.Buffer)
	if err := preambleTmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to build document preamble: %w", err)
	}
	return buf.String(), nil
}

// PackageScripts lists the SILE package scripts (*.lua) in dir in natural
// order, as script names relative to the parent of dir. A missing directory
// has no scripts.
func PackageScripts(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("unable to list packages in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		if _, err := os.Stat(dir); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to access packages directory %s: %w", dir, err)
		}
		return nil, nil
	}

	base := filepath.Base(dir)
	scripts := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".lua")
		scripts = append(scripts, base+"/"+name)
	}
	sort.Sort(natural.StringSlice(scripts))
	return scripts, nil
}
