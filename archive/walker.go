// Package archive walks documents stored in zip archives.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// ErrUnsafePath is returned for archives with entries that would escape the
// destination when extracted (absolute or containing "..").
var ErrUnsafePath = errors.New("unsafe path in archive")

// WalkFunc is called for each selected file. The archive argument is the path
// passed to Walk. Returning an error stops the walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every regular file of the archive selected by
// selector, in natural order of entry names. An empty selector selects
// everything, otherwise it names either a single entry or a directory inside
// the archive (with or without trailing slash). Names use forward slashes.
func Walk(ctx context.Context, archive, selector string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: %w", f.Name, ErrUnsafePath)
		}
		if !f.FileInfo().IsDir() && selected(f.Name, selector) {
			files = append(files, f)
		}
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case a.Name == b.Name:
			return 0
		case natural.Less(a.Name, b.Name):
			return -1
		}
		return 1
	})

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func selected(name, selector string) bool {
	if selector == "" {
		return true
	}
	dir := strings.TrimSuffix(selector, "/")
	return name == dir || strings.HasPrefix(name, dir+"/")
}

// isSafePath returns false for absolute paths and paths with ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || (len(name) > 1 && name[1] == ':') {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}
