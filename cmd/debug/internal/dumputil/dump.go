// Package dumputil provides shared output helpers for debug tools. It
// operates on parsed document trees and style tables and produces tree
// dumps, style reports and translated SILE sources.
package dumputil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rst2sile/doctree"
	"rst2sile/style"
	"rst2sile/translate"
)

// DumpTreeTxt writes the document tree to <stem>-tree.txt.
func DumpTreeTxt(tree *doctree.Node, inPath, outDir string, overwrite bool) error {
	return WriteOutput(inPath, outDir, "-tree.txt", []byte(tree.String()), overwrite)
}

// DumpStylesTxt writes every selector of the table together with the markup
// it compiles to into <stem>-styles.txt.
func DumpStylesTxt(tbl *style.Table, inPath, outDir string, overwrite bool) error {
	return WriteOutput(inPath, outDir, "-styles.txt", []byte(StylesReport(tbl)), overwrite)
}

// DumpSile writes translated document to <stem>.sil.
func DumpSile(tree *doctree.Node, opts translate.Options, inPath, outDir string, overwrite bool) error {
	markup, err := translate.Document(tree, opts, nil)
	if err != nil {
		return err
	}
	return WriteOutput(inPath, outDir, ".sil", []byte(markup), overwrite)
}

// StylesReport lists selectors in natural order, each with its properties
// and the opener/closer pair they compile to, followed by the stylesheets
// as parsed.
func StylesReport(tbl *style.Table) string {
	var sb strings.Builder
	names := tbl.Names()
	fmt.Fprintf(&sb, "%d selector(s)\n\n", len(names))
	for _, name := range names {
		decl := tbl.Lookup(name)
		fmt.Fprintf(&sb, "%s\n", name)
		for _, p := range decl.Properties() {
			fmt.Fprintf(&sb, "    %s: %s\n", p.Name, p.Value)
		}
		opener, closer := style.Compile(decl)
		fmt.Fprintf(&sb, "    => %q ... %q\n\n", opener, closer)
	}
	sb.WriteString("---\n")
	sb.WriteString(tbl.Dump())
	return sb.String()
}

// WriteOutput writes data to <stem><suffix> in either the input file's directory or outDir.
func WriteOutput(inPath, outDir, suffix string, data []byte, overwrite bool) error {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	outPath := filepath.Join(dir, stem+suffix)

	if _, err := os.Stat(outPath); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s (use -overwrite)", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}
