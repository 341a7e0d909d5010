package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"rst2sile/docutils"
)

// headSize is how much of a file is read to decide what it is.
const headSize = 512

type srcKind int

const (
	srcNone srcKind = iota
	srcDocutils
	srcMarkdown
)

func (k srcKind) String() string {
	switch k {
	case srcDocutils:
		return "docutils"
	case srcMarkdown:
		return "markdown"
	default:
		return "none"
	}
}

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

var docutilsType = filetype.NewType("docutils", "application/x-docutils+xml")

func init() {
	filetype.AddMatcher(docutilsType, func(buf []byte) bool {
		return docutils.Sniff(buf)
	})
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for a byte order mark. UTF-32 LE has to be checked before
// UTF-16 LE, its mark starts the same way.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without byte order mark.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		panic(fmt.Sprintf("unexpected source encoding %d", enc))
	}
}

func kindByName(name string) srcKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return srcDocutils
	case ".md", ".markdown":
		return srcMarkdown
	}
	return srcNone
}

// classify decides what head of a file named name holds. Docutils XML is
// recognized by content, markdown has to be text.
func classify(name string, head []byte) (srcKind, srcEncoding, error) {
	kind := kindByName(name)
	if kind == srcNone {
		return srcNone, encUnknown, nil
	}

	enc := detectUTF(head)
	text, err := io.ReadAll(selectReader(bytes.NewReader(head), enc))
	if err != nil {
		// head may end in the middle of a code unit
		if len(text) == 0 {
			return srcNone, encUnknown, nil
		}
	}

	switch kind {
	case srcDocutils:
		if !filetype.IsType(text, docutilsType) {
			return srcNone, encUnknown, nil
		}
	case srcMarkdown:
		if bytes.IndexByte(text, 0) >= 0 || !utf8.Valid(trimPartialRune(text)) {
			return srcNone, encUnknown, nil
		}
	}
	return kind, enc, nil
}

// trimPartialRune drops an incomplete UTF-8 sequence cut by the head limit.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}
			break
		}
	}
	return buf
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	head, err := readHead(file)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func isSourceFile(path string) (srcKind, srcEncoding, error) {
	if kindByName(path) == srcNone {
		return srcNone, encUnknown, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return srcNone, encUnknown, err
	}
	defer file.Close()

	head, err := readHead(file)
	if err != nil {
		return srcNone, encUnknown, err
	}
	return classify(path, head)
}

func isSourceInArchive(f *zip.File) (srcKind, srcEncoding, error) {
	if f.FileInfo().IsDir() || kindByName(f.Name) == srcNone {
		return srcNone, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return srcNone, encUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return srcNone, encUnknown, err
	}
	return classify(f.Name, head)
}
