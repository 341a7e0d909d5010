// Package render runs the SILE typesetter over generated markup and returns
// the resulting PDF.
package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// DefaultExecutable is the SILE binary looked up in PATH.
const DefaultExecutable = "sile"

// InvocationError reports a failed SILE run.
type InvocationError struct {
	Executable string
	Args       []string
	Stderr     string
	Err        error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Executable, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Renderer invokes SILE. PackagePath, when set, is exported as SILE_PATH so
// SILE finds the bundled package scripts. Dir is the directory SILE runs in,
// relative image references resolve against it; the temporary working
// directory is used when it is empty.
type Renderer struct {
	Executable  string
	Args        []string
	PackagePath string
	Dir         string

	log *zap.Logger
}

// New returns a renderer using executable, or "sile" when it is empty.
func New(executable string, args []string, packagePath string, log *zap.Logger) *Renderer {
	if executable == "" {
		executable = DefaultExecutable
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		Executable:  executable,
		Args:        args,
		PackagePath: packagePath,
		log:         log.Named("render"),
	}
}

// Render typesets markup and returns the PDF. When SILE leaves a table of
// contents behind and the document relies on it, SILE is run a second time
// so the table sees the final page numbers.
func (r *Renderer) Render(ctx context.Context, markup string, useDocutilsTOC bool) ([]byte, error) {
	dir, err := os.MkdirTemp("", "rst2sile-*")
	if err != nil {
		return nil, fmt.Errorf("unable to create working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			r.log.Warn("Unable to remove working directory", zap.String("dir", dir), zap.Error(err))
		}
	}()

	src := filepath.Join(dir, "document.sil")
	out := filepath.Join(dir, "document.pdf")
	if err := os.WriteFile(src, []byte(markup), 0o644); err != nil {
		return nil, fmt.Errorf("unable to write SILE source: %w", err)
	}

	if err := r.run(ctx, dir, src, out); err != nil {
		return nil, err
	}
	if !useDocutilsTOC && tocWritten(src) {
		r.log.Debug("Table of contents found, running SILE again")
		if err := r.run(ctx, dir, src, out); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("unable to read SILE output: %w", err)
	}
	if !filetype.Is(data, "pdf") {
		return nil, fmt.Errorf("SILE output is not a PDF (%d bytes)", len(data))
	}
	return data, nil
}

func (r *Renderer) run(ctx context.Context, dir, src, out string) error {
	args := append(append([]string{}, r.Args...), src, "-o", out)

	cmd := exec.CommandContext(ctx, r.Executable, args...)
	cmd.Dir = dir
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	cmd.Env = os.Environ()
	if r.PackagePath != "" {
		cmd.Env = append(cmd.Env, "SILE_PATH="+r.PackagePath)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	fail := func(err error) error {
		return &InvocationError{Executable: r.Executable, Args: args, Stderr: stderr.String(), Err: err}
	}

	r.log.Debug("Starting SILE", zap.String("executable", r.Executable), zap.Strings("args", args))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fail(err)
	}
	if err := cmd.Start(); err != nil {
		return fail(err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		r.log.Debug("SILE", zap.String("out", scanner.Text()))
	}
	scanErr := scanner.Err()
	if errors.Is(scanErr, bufio.ErrTooLong) {
		r.log.Debug("SILE output line too long, rest of output discarded")
		scanErr = nil
	}
	// keep the pipe drained when scanning stops early, SILE would block on it
	if _, err := io.Copy(io.Discard, stdout); err != nil && scanErr == nil {
		scanErr = err
	}

	if err := cmd.Wait(); err != nil {
		return fail(err)
	}
	if scanErr != nil {
		return fail(fmt.Errorf("stdout pipe broken: %w", scanErr))
	}
	return nil
}

// tocWritten reports whether SILE saved a table of contents for src. SILE
// names it after the input without its extension.
func tocWritten(src string) bool {
	for _, name := range []string{strings.TrimSuffix(src, filepath.Ext(src)) + ".toc", src + ".toc"} {
		if _, err := os.Stat(name); err == nil {
			return true
		}
	}
	return false
}
