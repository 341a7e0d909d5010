//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names. Leading dots
// are dropped so results are never hidden files.
func CleanFileName(in string) string {
	drop := string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if strings.ContainsRune(drop, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
