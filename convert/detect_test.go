package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const docutilsSource = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE document PUBLIC "+//IDN docutils.sourceforge.net//DTD Docutils Generic//EN//XML" "http://docutils.sourceforge.net/docs/ref/docutils.dtd">
<document source="guide.rst" ids="guide" names="guide" title="Guide"><title>Guide</title><paragraph>Hello, <emphasis>world</emphasis>.</paragraph></document>
`

const markdownSource = "# Guide\n\nHello, *world*.\n"

// TestIsArchiveFile tests archive file detection
func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("non-zip extension", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.txt")
		if err := os.WriteFile(filePath, []byte("not a zip"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	t.Run("zip extension but invalid content", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.zip")
		if err := os.WriteFile(filePath, []byte("not a real zip file"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	t.Run("valid zip file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "docs.zip")
		writeZip(t, filePath, map[string]string{"guide.xml": docutilsSource})

		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if !got {
			t.Errorf("isArchiveFile() = %v, want true", got)
		}
	})
}

// TestIsArchiveFile_NonExistent tests with non-existent file
func TestIsArchiveFile_NonExistent(t *testing.T) {
	_, err := isArchiveFile("/nonexistent/file.zip")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestDetectUTF tests UTF encoding detection
func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 0x00}, encUTF8},
		{"UTF-16 Big Endian BOM", []byte{0xFE, 0xFF, 0x00, 0x00}, encUTF16BigEndian},
		{"UTF-16 Little Endian BOM", []byte{0xFF, 0xFE, 0x01, 0x00}, encUTF16LittleEndian},
		{"UTF-32 Big Endian BOM", []byte{0x00, 0x00, 0xFE, 0xFF}, encUTF32BigEndian},
		{"UTF-32 Little Endian BOM", []byte{0xFF, 0xFE, 0x00, 0x00}, encUTF32LittleEndian},
		{"No BOM", []byte{0x00, 0x01, 0x02, 0x03}, encUnknown},
		{"Short buffer", []byte{0xEF}, encUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.buf); got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsSourceFile tests source detection by name and content
func TestIsSourceFile(t *testing.T) {
	tmpDir := t.TempDir()

	utf16 := []byte{0xFF, 0xFE}
	for _, r := range docutilsSource {
		utf16 = append(utf16, byte(r), 0)
	}

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantKind srcKind
		wantEnc  srcEncoding
	}{
		{"docutils XML", "guide.xml", []byte(docutilsSource), srcDocutils, encUnknown},
		{"docutils XML with UTF-8 BOM", "bom.xml", append([]byte{0xEF, 0xBB, 0xBF}, docutilsSource...), srcDocutils, encUTF8},
		{"docutils XML in UTF-16", "wide.xml", utf16, srcDocutils, encUTF16LittleEndian},
		{"uppercase extension", "GUIDE.XML", []byte(docutilsSource), srcDocutils, encUnknown},
		{"other XML", "feed.xml", []byte(`<?xml version="1.0"?><rss><channel/></rss>`), srcNone, encUnknown},
		{"markdown", "guide.md", []byte(markdownSource), srcMarkdown, encUnknown},
		{"markdown long extension", "guide.markdown", []byte(markdownSource), srcMarkdown, encUnknown},
		{"binary with markdown extension", "blob.md", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, srcNone, encUnknown},
		{"unknown extension", "guide.txt", []byte(markdownSource), srcNone, encUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)
			if err := os.WriteFile(filePath, tt.content, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			gotKind, gotEnc, err := isSourceFile(filePath)
			if err != nil {
				t.Fatalf("isSourceFile() error = %v", err)
			}
			if gotKind != tt.wantKind {
				t.Errorf("isSourceFile() kind = %v, want %v", gotKind, tt.wantKind)
			}
			if gotEnc != tt.wantEnc {
				t.Errorf("isSourceFile() encoding = %v, want %v", gotEnc, tt.wantEnc)
			}
		})
	}
}

// TestIsSourceFile_NonExistent tests with non-existent file
func TestIsSourceFile_NonExistent(t *testing.T) {
	_, _, err := isSourceFile("/nonexistent/file.xml")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsSourceFile_CutRune(t *testing.T) {
	// multi-byte rune straddling the head limit must not reject the file
	content := strings.Repeat("a", headSize-1) + "ж and more"
	filePath := filepath.Join(t.TempDir(), "cut.md")
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	kind, _, err := isSourceFile(filePath)
	if err != nil {
		t.Fatalf("isSourceFile() error = %v", err)
	}
	if kind != srcMarkdown {
		t.Errorf("isSourceFile() kind = %v, want %v", kind, srcMarkdown)
	}
}

// TestIsSourceInArchive tests source detection in archive
func TestIsSourceInArchive(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	writeZip(t, zipPath, map[string]string{
		"a/guide.xml": docutilsSource,
		"b/notes.md":  markdownSource,
		"c/readme":    "not a source",
		"d/bom.xml":   "\xEF\xBB\xBF" + docutilsSource,
	})

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	defer r.Close()

	want := map[string]struct {
		kind srcKind
		enc  srcEncoding
	}{
		"a/guide.xml": {srcDocutils, encUnknown},
		"b/notes.md":  {srcMarkdown, encUnknown},
		"c/readme":    {srcNone, encUnknown},
		"d/bom.xml":   {srcDocutils, encUTF8},
	}

	for _, f := range r.File {
		t.Run(f.Name, func(t *testing.T) {
			gotKind, gotEnc, err := isSourceInArchive(f)
			if err != nil {
				t.Fatalf("isSourceInArchive() error = %v", err)
			}
			if gotKind != want[f.Name].kind {
				t.Errorf("isSourceInArchive() kind = %v, want %v", gotKind, want[f.Name].kind)
			}
			if gotEnc != want[f.Name].enc {
				t.Errorf("isSourceInArchive() encoding = %v, want %v", gotEnc, want[f.Name].enc)
			}
		})
	}
}

// TestSelectReader tests reader selection for different encodings
func TestSelectReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  srcEncoding
	}{
		{"plain", []byte("text"), encUnknown},
		{"utf8 bom", []byte("\xEF\xBB\xBFtext"), encUTF8},
		{"utf16 be", []byte{0xFE, 0xFF, 0, 't', 0, 'e', 0, 'x', 0, 't'}, encUTF16BigEndian},
		{"utf16 le", []byte{0xFF, 0xFE, 't', 0, 'e', 0, 'x', 0, 't', 0}, encUTF16LittleEndian},
		{"utf32 be", []byte{0, 0, 0xFE, 0xFF, 0, 0, 0, 't', 0, 0, 0, 'e', 0, 0, 0, 'x', 0, 0, 0, 't'}, encUTF32BigEndian},
		{"utf32 le", []byte{0xFF, 0xFE, 0, 0, 't', 0, 0, 0, 'e', 0, 0, 0, 'x', 0, 0, 0, 't', 0, 0, 0}, encUTF32LittleEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(selectReader(bytes.NewReader(tt.data), tt.enc))
			if err != nil {
				t.Fatalf("selectReader() read error = %v", err)
			}
			if string(got) != "text" {
				t.Errorf("selectReader() produced %q, want %q", got, "text")
			}
		})
	}
}

// TestSelectReader_Panic tests that invalid encoding causes panic
func TestSelectReader_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid encoding, but didn't panic")
		}
	}()

	selectReader(bytes.NewReader([]byte("test")), srcEncoding(999))
}

func TestSrcKindString(t *testing.T) {
	for kind, want := range map[srcKind]string{srcNone: "none", srcDocutils: "docutils", srcMarkdown: "markdown"} {
		if got := kind.String(); got != want {
			t.Errorf("srcKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for name, content := range files {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}
