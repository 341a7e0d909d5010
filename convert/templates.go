package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"rst2sile/config"
	"rst2sile/doctree"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Subtitle   string
	Authors    []string
	Date       string
	Language   string
	Format     string
	SourceFile string
}

// documentTitle returns text of the document title, if any.
func documentTitle(tree *doctree.Node, kind doctree.Kind) string {
	if tree == nil {
		return ""
	}
	if n := tree.FirstChildOf(kind); n != nil {
		return strings.TrimSpace(n.AsText())
	}
	return ""
}

// docinfoValues collects author and date fields of the document docinfo.
func docinfoValues(tree *doctree.Node) (authors []string, date string) {
	if tree == nil {
		return nil, ""
	}
	info := tree.FirstChildOf(doctree.KindDocinfo)
	if info == nil {
		return nil, ""
	}
	for _, field := range info.Children() {
		switch field.Kind {
		case doctree.KindAuthor:
			authors = append(authors, strings.TrimSpace(field.AsText()))
		case doctree.KindAuthors:
			for _, a := range field.Children() {
				authors = append(authors, strings.TrimSpace(a.AsText()))
			}
		case doctree.KindDate:
			date = strings.TrimSpace(field.AsText())
		}
	}
	return authors, date
}

func expandTemplate(tree *doctree.Node, src string, name config.TemplateFieldName, field string, format config.OutputFmt, lang string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	authors, date := docinfoValues(tree)
	values := Values{
		Context:    string(name),
		Title:      documentTitle(tree, doctree.KindTitle),
		Subtitle:   documentTitle(tree, doctree.KindSubtitle),
		Authors:    authors,
		Date:       date,
		Language:   lang,
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
