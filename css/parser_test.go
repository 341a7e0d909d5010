package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"rst2sile/css"
)

func TestParser_ElementSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`paragraph { text-indent: 1em; }`), "test")

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if len(rule.Selectors) != 1 || rule.Selectors[0] != "paragraph" {
		t.Errorf("selectors = %v, want [paragraph]", rule.Selectors)
	}
	if len(rule.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(rule.Declarations))
	}
	if d := rule.Declarations[0]; d.Name != "text-indent" || d.Value != "1em" {
		t.Errorf("declaration = %+v", d)
	}
}

func TestParser_ClassSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.epigraph { font-style: italic; }`), "test")

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if got := sheet.Rules[0].Selectors; len(got) != 1 || got[0] != ".epigraph" {
		t.Errorf("selectors = %v, want [.epigraph]", got)
	}
}

func TestParser_SelectorList(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`title, .big , subtitle { font-size: 20pt; }`), "test")

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	want := []string{"title", ".big", "subtitle"}
	got := sheet.Rules[0].Selectors
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("selectors = %v, want %v", got, want)
	}
}

func TestParser_DeclarationOrderAndValues(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
body {
    font-family: "Gentium Plus";
    weight: 400;
    font-weight: 700;
    color: #ff0000;
    margin-left: 2em;
}
`)
	sheet := p.Parse(input, "test")

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	want := []css.Declaration{
		{Name: "font-family", Value: `"Gentium Plus"`},
		{Name: "weight", Value: "400"},
		{Name: "font-weight", Value: "700"},
		{Name: "color", Value: "#ff0000"},
		{Name: "margin-left", Value: "2em"},
	}
	got := sheet.Rules[0].Declarations
	if len(got) != len(want) {
		t.Fatalf("declarations = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParser_MultiTokenValue(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`verbatim { font-family: Hack  Mono; }`), "test")
	if len(sheet.Rules) != 1 || len(sheet.Rules[0].Declarations) != 1 {
		t.Fatalf("unexpected parse result: %+v", sheet.Rules)
	}
	if got := sheet.Rules[0].Declarations[0].Value; got != "Hack Mono" {
		t.Errorf("value = %q, want %q", got, "Hack Mono")
	}
}

func TestParser_SkipsAtRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
@import url("other.css");
@media print {
    paragraph { color: red; }
}
@font-face {
    font-family: "X";
    src: url(x.ttf);
}
note { color: blue; }
`)
	sheet := p.Parse(input, "test")

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected only the plain rule, got %d: %+v", len(sheet.Rules), sheet.Rules)
	}
	if sheet.Rules[0].Selectors[0] != "note" {
		t.Errorf("selector = %q, want note", sheet.Rules[0].Selectors[0])
	}
	if len(sheet.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %v", sheet.Warnings)
	}
}

func TestParser_CommentsAndEmpty(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`/* nothing here */`), "test")
	if len(sheet.Rules) != 0 {
		t.Errorf("expected no rules, got %+v", sheet.Rules)
	}

	sheet = p.Parse([]byte(`/* c */ topic { } literal { font-family: mono; }`), "test")
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sheet.Rules))
	}
	if len(sheet.Rules[0].Declarations) != 0 {
		t.Errorf("expected empty declaration block, got %+v", sheet.Rules[0].Declarations)
	}
}

func TestStylesheet_String(t *testing.T) {
	sheet := &css.Stylesheet{
		Rules: []css.Rule{
			{Selectors: []string{"title", ".big"}, Declarations: []css.Declaration{{Name: "size", Value: "20pt"}}},
			{Selectors: []string{"note"}},
		},
	}
	want := "title, .big {\n  size: 20pt;\n}\n\nnote {\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestIsLength(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12pt", true},
		{"1.5cm", true},
		{"3in", true},
		{"50%fw", true},
		{"80%pw", true},
		{"10%pmax", true},
		{"0", true},
		{"12px", false},
		{"2em", false},
		{"%fw", false},
		{"abc", false},
	}
	for _, tt := range tests {
		if got := css.IsLength(tt.in); got != tt.want {
			t.Errorf("IsLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
