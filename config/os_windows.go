//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names.
func CleanFileName(in string) string {
	drop := `<>":/\|?*` + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(drop, sym) {
			return -1
		}
		return sym
	}, in)
	if len(out) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible and turns on
// VT100 sequence processing of the Windows console.
func EnableColorOutput(stream *os.File) bool {
	if !windows10OrLater() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	return enableVirtualTerminal(windows.Handle(stream.Fd()))
}

func windows10OrLater() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && v >= 10
}

func enableVirtualTerminal(h windows.Handle) bool {
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
