// sildump parses a docutils XML or markdown document the same way the
// converter does and writes intermediate results next to it: the document
// tree, the resolved style table with compiled markup for every selector and
// the translated SILE source.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"rst2sile/cmd/debug/internal/dumputil"
	"rst2sile/doctree"
	"rst2sile/docutils"
	"rst2sile/markdown"
	"rst2sile/style"
	"rst2sile/translate"
)

func main() {
	all := flag.Bool("all", false, "enable all dump flags (-tree, -styles, -sile)")
	tree := flag.Bool("tree", false, "dump document tree into <file>-tree.txt")
	styles := flag.Bool("styles", false, "dump style table and compiled markup into <file>-styles.txt")
	sile := flag.Bool("sile", false, "translate document into <file>.sil")
	sheets := flag.String("stylesheets", "", "comma separated list of CSS files (required for -styles and -sile)")
	lang := flag.String("lang", "en", "language of docinfo and admonition labels")
	verbose := flag.Bool("v", false, "log parser and translator diagnostics to stderr")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sildump [-all] [-tree] [-styles] [-sile] [-stylesheets a.css,b.css] [-lang tag] [-v] [-overwrite] <file.xml|file.md> [outdir]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *all {
		*tree = true
		*styles = true
		*sile = true
	}
	if !*tree && !*styles && !*sile {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync() //nolint:errcheck
	}

	inPath := flag.Arg(0)
	outDir := ""
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	b, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", inPath, err)
		os.Exit(1)
	}

	doc, err := parse(b, inPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", inPath, err)
		os.Exit(1)
	}

	if *tree {
		if err := dumputil.DumpTreeTxt(doc, inPath, outDir, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "dump tree: %v\n", err)
			os.Exit(1)
		}
	}

	if !*styles && !*sile {
		return
	}

	var paths []string
	for p := range strings.SplitSeq(*sheets, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no stylesheets specified\n")
		os.Exit(2)
	}
	tbl, err := style.Load(paths, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load stylesheets: %v\n", err)
		os.Exit(1)
	}

	if *styles {
		if err := dumputil.DumpStylesTxt(tbl, inPath, outDir, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "dump styles: %v\n", err)
			os.Exit(1)
		}
	}

	if *sile {
		tag, err := language.Parse(*lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "language %q: %v\n", *lang, err)
			os.Exit(2)
		}
		opts := translate.Options{Styles: tbl, Language: tag}
		if err := dumputil.DumpSile(doc, opts, inPath, outDir, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "translate: %v\n", err)
			os.Exit(1)
		}
	}
}

// parse picks the front end by extension, files other than markdown are
// expected to be docutils XML.
func parse(b []byte, path string, log *zap.Logger) (*doctree.Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return markdown.Parse(bytes.NewReader(b), log)
	}
	if !docutils.Sniff(b) {
		fmt.Fprintf(os.Stderr, "%s does not look like docutils XML, trying anyway\n", path)
	}
	return docutils.Parse(bytes.NewReader(b), log)
}
