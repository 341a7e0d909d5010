package convert

import (
	"archive/zip"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rst2sile/archive"
	"rst2sile/config"
	"rst2sile/doctree"
	"rst2sile/docutils"
	"rst2sile/markdown"
	"rst2sile/render"
	"rst2sile/state"
	"rst2sile/style"
	"rst2sile/translate"
)

//go:embed default.css
var defaultStylesheet []byte

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to pdf", zap.Error(err))
		format = config.OutputFmtPdf
	}

	if sheets := splitList(cmd.String("stylesheets")); len(sheets) > 0 {
		env.Cfg.Document.Stylesheets = sheets
	}
	if cmd.Bool("use-docutils-toc") {
		env.Cfg.Document.UseDocutilsTOC = true
	}

	if err := prepareEnv(env, format, log); err != nil {
		return err
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// prepareEnv loads everything conversions share: the style table and the
// list of SILE package scripts.
func prepareEnv(env *state.LocalEnv, format config.OutputFmt, log *zap.Logger) (err error) {
	env.Format = format
	env.UseDocutilsTOC = env.Cfg.Document.UseDocutilsTOC
	env.DefaultStyle = defaultStylesheet

	if len(env.Cfg.Document.Stylesheets) == 0 {
		env.Styles = style.New([]style.Source{{Name: "default.css", Data: env.DefaultStyle}}, log)
	} else if env.Styles, err = style.Load(env.Cfg.Document.Stylesheets, log); err != nil {
		return fmt.Errorf("unable to load stylesheets: %w", err)
	}

	if env.Packages, err = translate.PackageScripts(env.Cfg.Document.PackagesDir); err != nil {
		return err
	}
	log.Debug("Environment prepared",
		zap.Int("selectors", env.Styles.Selectors()), zap.Strings("packages", env.Packages), zap.Bool("docutils_toc", env.UseDocutilsTOC))
	return nil
}

func splitList(value string) []string {
	var list []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		kind, enc, err := isSourceFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if kind != srcNone && len(tail) == 0 {
			// we have document, it cannot have tail
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to process file: %w", err)
			}
			defer file.Close()
			return processDocument(ctx, selectReader(file, enc), kind, filepath.Base(head), filepath.Dir(head), dst, log)
		}
		return fmt.Errorf("input was not recognized as docutils XML or markdown (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding sources and processes them. A
// failing document does not stop the walk, all failures are reported
// together.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	var failures error
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				failures = multierr.Append(failures, fmt.Errorf("%s: %w", path, err))
			}
			return nil
		}

		kind, enc, err := isSourceFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if kind == srcNone {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDocument(ctx, selectReader(file, enc), kind, src, filepath.Dir(path), dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", path, err))
		}
		return nil
	})
	return multierr.Append(err, failures)
}

// processArchive walks all files inside archive, finds sources under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var failures error
	err = archive.Walk(ctx, path, filepath.ToSlash(pathIn), func(archive string, f *zip.File) error {
		kind, enc, err := isSourceInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if kind == srcNone {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
			return nil
		}
		defer r.Close()

		// images inside archives cannot be resolved, relative references
		// are looked up next to the archive
		if err := processDocument(ctx, selectReader(r, enc), kind, filepath.Join(pathOut, f.FileHeader.Name), filepath.Dir(archive), dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
		}
		return nil
	})
	return multierr.Append(err, failures)
}

func parseSource(r io.Reader, kind srcKind, log *zap.Logger) (*doctree.Node, error) {
	switch kind {
	case srcDocutils:
		return docutils.Parse(r, log)
	case srcMarkdown:
		return markdown.Parse(r, log)
	default:
		// this should never happen
		panic(fmt.Sprintf("unsupported source kind %s", kind))
	}
}

// processDocument converts single source. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside archive
// or directory (including base file name). "base" is the directory relative
// image references are resolved against when rendering. "dst" is the
// destination directory where the converted file should be written.
func processDocument(ctx context.Context, r io.Reader, kind srcKind, src, base, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src), zap.Stringer("kind", kind))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	tree, err := parseSource(r, kind, log)
	if err != nil {
		return fmt.Errorf("unable to parse %s source (%s): %w", kind, src, err)
	}

	// report entries mirror source layout so same names in different
	// directories do not collide
	name := filepath.ToSlash(src)
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("tree/%s.txt", name), []byte(tree.String()))
	}

	markup, err := translate.Document(tree, translate.Options{
		Styles:         env.Styles,
		UseDocutilsTOC: env.UseDocutilsTOC,
		Packages:       env.Packages,
		Language:       env.Cfg.Document.LanguageTag(),
	}, log)
	if err != nil {
		return fmt.Errorf("unable to translate (%s): %w", src, err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("sile/%s.sil", name), []byte(markup))
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(tree, src, dst, env.Format, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	data := []byte(markup)
	if env.Format == config.OutputFmtPdf {
		renderer := render.New(env.Cfg.Render.Executable, env.Cfg.Render.Args, packagePath(env.Cfg.Document.PackagesDir), log)
		renderer.Dir = base
		if data, err = renderer.Render(ctx, markup, env.UseDocutilsTOC); err != nil {
			return fmt.Errorf("unable to render (%s): %w", src, err)
		}
	}
	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store conversion result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result/%s%s", name, filepath.Ext(outputName)), outputName)
	}
	return nil
}

// packagePath is what SILE needs on its search path for scripts named
// relative to the parent of the packages directory.
func packagePath(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Dir(filepath.Clean(dir))
}
