package convert

import (
	"strings"
	"testing"

	"rst2sile/config"
	"rst2sile/doctree"
)

func expand(t *testing.T, tree *doctree.Node, src, field string) string {
	t.Helper()
	result, err := expandTemplate(tree, src, config.OutputNameTemplateFieldName, field, config.OutputFmtPdf, "en")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	return result
}

func TestExpandTemplate_SimpleText(t *testing.T) {
	if result := expand(t, testTree(), "guide.xml", "simple-text"); result != "simple-text" {
		t.Errorf("expandTemplate() = %q, want %q", result, "simple-text")
	}
}

func TestExpandTemplate_Values(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected string
	}{
		{"title", "{{ .Title }}", "Test Document"},
		{"subtitle", "{{ .Subtitle }}", "A Subtitle"},
		{"authors", `{{ join ", " .Authors }}`, "John Doe"},
		{"date", "{{ .Date }}", "2024-05-01"},
		{"language", "{{ .Language }}", "en"},
		{"format", "{{ .Format }}", "pdf"},
		{"source file", "{{ .SourceFile }}", "guide"},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
		{"sprig function", "{{ .Title | upper }}", "TEST DOCUMENT"},
		{"conditional", `{{ if .Authors }}{{ index .Authors 0 }}/{{ end }}{{ .Title }}`, "John Doe/Test Document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expand(t, testTree(), "docs/guide.xml", tt.field); result != tt.expected {
				t.Errorf("expandTemplate() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExpandTemplate_MultipleAuthors(t *testing.T) {
	tree := doctree.New(doctree.KindDocument,
		doctree.New(doctree.KindTitle, doctree.NewText("Paper")),
		doctree.New(doctree.KindDocinfo,
			doctree.New(doctree.KindAuthors,
				doctree.New(doctree.KindAuthor, doctree.NewText("Ann")),
				doctree.New(doctree.KindAuthor, doctree.NewText("Bob")),
			),
		),
	)

	if result := expand(t, tree, "paper.xml", `{{ join "+" .Authors }}`); result != "Ann+Bob" {
		t.Errorf("expandTemplate() = %q, want %q", result, "Ann+Bob")
	}
}

func TestExpandTemplate_NoMetadata(t *testing.T) {
	tree := doctree.New(doctree.KindDocument,
		doctree.New(doctree.KindParagraph, doctree.NewText("Body.")),
	)

	result := expand(t, tree, "notes.md", "{{ .Title }}|{{ .Date }}|{{ len .Authors }}|{{ .SourceFile }}")
	if result != "||0|notes" {
		t.Errorf("expandTemplate() = %q, want %q", result, "||0|notes")
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"parse error", "{{ .Title ", "unable to parse template field"},
		{"unknown field", "{{ .Publisher }}", "Publisher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expandTemplate(testTree(), "guide.xml", config.OutputNameTemplateFieldName, tt.field, config.OutputFmtPdf, "en")
			if err == nil {
				t.Fatal("expandTemplate() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expandTemplate() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDocumentTitle_NilTree(t *testing.T) {
	if title := documentTitle(nil, doctree.KindTitle); title != "" {
		t.Errorf("documentTitle(nil) = %q", title)
	}
	if authors, date := docinfoValues(nil); authors != nil || date != "" {
		t.Errorf("docinfoValues(nil) = %q, %q", authors, date)
	}
}
