package dumputil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"rst2sile/doctree"
	"rst2sile/style"
	"rst2sile/translate"
)

func TestStylesReport(t *testing.T) {
	tbl := style.New([]style.Source{{Name: "test.css", Data: []byte("emphasis { color: red } h10, h2 { font-weight: 700 }")}}, zaptest.NewLogger(t))

	report := StylesReport(tbl)
	for _, want := range []string{
		"3 selector(s)",
		"emphasis\n    color: red\n    => \"\\\\color[color=red]{\" ... \"}\"",
		"h2\n    weight: 700",
		"/* test.css */",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}
	if strings.Index(report, "h2\n") > strings.Index(report, "h10\n") {
		t.Errorf("selectors are not in natural order:\n%s", report)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "guide.xml")

	if err := WriteOutput(in, "", "-tree.txt", []byte("one"), false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	out := filepath.Join(dir, "guide-tree.txt")
	if data, err := os.ReadFile(out); err != nil || string(data) != "one" {
		t.Fatalf("output = %q, %v", data, err)
	}

	if err := WriteOutput(in, "", "-tree.txt", []byte("two"), false); err == nil {
		t.Error("WriteOutput() expected error for existing output")
	}
	if err := WriteOutput(in, "", "-tree.txt", []byte("two"), true); err != nil {
		t.Errorf("WriteOutput() with overwrite error = %v", err)
	}

	other := t.TempDir()
	if err := WriteOutput(in, other, ".sil", []byte("x"), false); err != nil {
		t.Fatalf("WriteOutput() to directory error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(other, "guide.sil")); err != nil {
		t.Errorf("output not written to directory: %v", err)
	}
}

func TestDumpTreeAndSile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	tree := doctree.New(doctree.KindDocument, doctree.New(doctree.KindParagraph, doctree.NewText("Hi {there}")))

	if err := DumpTreeTxt(tree, in, "", false); err != nil {
		t.Fatalf("DumpTreeTxt() error = %v", err)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "doc-tree.txt")); err != nil || !strings.Contains(string(data), "paragraph") {
		t.Errorf("tree dump = %q, %v", data, err)
	}

	opts := translate.Options{Styles: style.New(nil, nil)}
	if err := DumpSile(tree, opts, in, "", false); err != nil {
		t.Fatalf("DumpSile() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "doc.sil"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `Hi \{there\}`) {
		t.Errorf("translated document = %q", data)
	}
}
