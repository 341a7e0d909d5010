package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if len(cfg.Document.Stylesheets) != 0 {
		t.Errorf("Default stylesheets = %q, want none", cfg.Document.Stylesheets)
	}
	if cfg.Document.UseDocutilsTOC {
		t.Error("Default UseDocutilsTOC = true")
	}
	if cfg.Render.Executable != "sile" {
		t.Errorf("Default executable = %q", cfg.Render.Executable)
	}
	if cfg.Document.LanguageTag() != language.English {
		t.Errorf("Default language = %s", cfg.Document.LanguageTag())
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
document:
  stylesheets: ["base.css", "book.css"]
  use_docutils_toc: true
  language: de-CH
  output_name_template: "{{ .Title }}"
render:
  executable: /opt/sile/bin/sile
  args: ["--quiet"]
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if got := strings.Join(cfg.Document.Stylesheets, ","); got != "base.css,book.css" {
		t.Errorf("Stylesheets = %q", got)
	}
	if !cfg.Document.UseDocutilsTOC {
		t.Error("UseDocutilsTOC = false")
	}
	if base, _ := cfg.Document.LanguageTag().Base(); base.String() != "de" {
		t.Errorf("LanguageTag() = %s", cfg.Document.LanguageTag())
	}
	if cfg.Document.OutputNameTemplate != "{{ .Title }}" {
		t.Errorf("OutputNameTemplate = %q, template must not be expanded", cfg.Document.OutputNameTemplate)
	}
	if cfg.Render.Executable != "/opt/sile/bin/sile" || len(cfg.Render.Args) != 1 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file logger mode = %q", cfg.Logging.FileLogger.Mode)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
document:
  file_name_transliterate: true
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Document.FileNameTransliterate {
		t.Error("FileNameTransliterate = false")
	}
	if cfg.Document.Language != "en" || cfg.Render.Executable != "sile" {
		t.Errorf("defaults were lost: %+v %+v", cfg.Document, cfg.Render)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndocument:\n  use_docutils_toc: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad language", "version: 1\ndocument:\n  language: \"not a language!\"\n"},
		{"empty stylesheet", "version: 1\ndocument:\n  stylesheets: [\"\"]\n"},
		{"missing packages dir", "version: 1\ndocument:\n  packages_dir: /nonexistent/packages\n"},
		{"no executable", "version: 1\nrender:\n  executable: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() succeeded, want error")
			}
		})
	}

	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	if _, err := LoadConfiguration("", option); err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Prepared config is not valid: %v", err)
	}

	cfg.Document.Stylesheets = []string{"a.css"}
	dumped, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	back, err := unmarshalConfig(dumped, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if back.Version != 1 || len(back.Document.Stylesheets) != 1 || back.Render.Executable != "sile" {
		t.Errorf("dump lost values: %+v", back)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestOutputFmt(t *testing.T) {
	tests := []struct {
		name string
		want OutputFmt
		ext  string
	}{
		{"sile", OutputFmtSile, ".sil"},
		{"pdf", OutputFmtPdf, ".pdf"},
	}
	for _, tt := range tests {
		got, err := ParseOutputFmt(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseOutputFmt(%q) = %v, %v", tt.name, got, err)
		}
		if got.String() != tt.name || got.Ext() != tt.ext || !got.IsValid() {
			t.Errorf("%v: String() = %q, Ext() = %q", got, got.String(), got.Ext())
		}
		text, err := got.MarshalText()
		if err != nil || string(text) != tt.name {
			t.Errorf("MarshalText() = %q, %v", text, err)
		}
		var back OutputFmt
		if err := back.UnmarshalText(text); err != nil || back != got {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	if _, err := ParseOutputFmt("epub"); !errors.Is(err, ErrInvalidOutputFmt) {
		t.Errorf("ParseOutputFmt(epub) error = %v", err)
	}
	if got := strings.Join(OutputFmtNames(), ","); got != "sile,pdf" {
		t.Errorf("OutputFmtNames() = %q", got)
	}
	if OutputFmt(99).IsValid() {
		t.Error("OutputFmt(99).IsValid() = true")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	OutputFmt(99).Ext()
}
