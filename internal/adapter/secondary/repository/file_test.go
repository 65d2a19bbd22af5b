package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anki-creator/internal/config"
	"anki-creator/internal/domain"
)

func newTestRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	base := t.TempDir()
	repo, err := NewFileRepository(config.FixedLocator(config.AppName, filepath.Join(base, "config"), filepath.Join(base, "data")))
	if err != nil {
		t.Fatalf("NewFileRepository: %v", err)
	}
	path, err := repo.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	return repo, path
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestSettingsRoundTrip(t *testing.T) {
	values := []domain.Settings{
		{},
		{APIKey: strPtr("")},
		{APIKey: strPtr("sk-test-123")},
		{APIKey: strPtr(`quote " and back\slash`)},
		{APIKey: strPtr("multi\nline\tkey ✓")},
	}
	for _, v := range values {
		data, err := encodeSettings(v)
		if err != nil {
			t.Fatalf("encodeSettings(%v): %v", v, err)
		}
		got, err := decodeSettings(data, "config.toml")
		if err != nil {
			t.Fatalf("decodeSettings(%q): %v", data, err)
		}
		if !got.Equal(v) {
			t.Fatalf("round trip of %+v produced %+v (encoded %q)", v, got, data)
		}
	}
}

func TestLoadFirstRunWritesDefault(t *testing.T) {
	repo, path := newTestRepo(t)

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !got.Equal(domain.DefaultSettings()) {
		t.Fatalf("Load = %+v, want default", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	onDisk, err := decodeSettings(data, path)
	if err != nil {
		t.Fatalf("decode default file: %v", err)
	}
	if !onDisk.Equal(domain.DefaultSettings()) {
		t.Fatalf("file content = %+v, want default", onDisk)
	}
}

func TestLoadCreatesMissingDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "does", "not", "exist")
	repo, err := NewFileRepository(config.FixedLocator(config.AppName, base, base))
	if err != nil {
		t.Fatalf("NewFileRepository: %v", err)
	}
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, config.AppName, config.ConfigFileName)); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if _, err := repo.AppConfigDir(); err != nil {
		t.Fatalf("AppConfigDir after Load: %v", err)
	}
}

func TestLoadTwiceReturnsEqualValues(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, "api_key = \"sk-twice\"\n")

	first, err := repo.Load()
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := repo.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("loads differ: %+v vs %+v", first, second)
	}
}

func TestLoadReadsAPIKey(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, `api_key = "sk-test-123"`)

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.APIKey == nil || *got.APIKey != "sk-test-123" {
		t.Fatalf("APIKey = %v, want sk-test-123", got.APIKey)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, `
theme = "dark"
api_key = "sk-forward"

[window]
width = 800
`)

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.APIKey == nil || *got.APIKey != "sk-forward" {
		t.Fatalf("APIKey = %v, want sk-forward", got.APIKey)
	}
}

func TestLoadMalformedReturnsParseError(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, `api_key = "unterminated`)

	_, err := repo.Load()
	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if parseErr.Line != 1 {
		t.Fatalf("ParseError.Line = %d, want 1", parseErr.Line)
	}
	if parseErr.Path != path {
		t.Fatalf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != `api_key = "unterminated` {
		t.Fatalf("malformed file was overwritten: %q", data)
	}
}

func TestLoadWrongShapeReturnsParseError(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, "api_key = 42\n")

	_, err := repo.Load()
	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestLoadDirectoryAtConfigPathIsIOError(t *testing.T) {
	repo, path := newTestRepo(t)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	_, err := repo.Load()
	var ioErr *domain.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
}

func TestSaveAbsentKeyOmitsEntry(t *testing.T) {
	repo, path := newTestRepo(t)
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := repo.Save(domain.Settings{APIKey: strPtr("sk-old")}); err != nil {
		t.Fatalf("Save with key: %v", err)
	}
	if err := repo.Save(domain.Settings{APIKey: nil}); err != nil {
		t.Fatalf("Save without key: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "api_key") {
		t.Fatalf("file still mentions api_key: %q", data)
	}
	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != nil {
		t.Fatalf("APIKey = %q, want absent", *got.APIKey)
	}
}

func TestSaveReplacesContentAndLeavesNoTempFiles(t *testing.T) {
	repo, path := newTestRepo(t)
	writeConfig(t, path, "api_key = \"first\"\nlegacy = true\n")

	if err := repo.Save(domain.Settings{APIKey: strPtr("second")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "legacy") || !strings.Contains(string(data), "second") {
		t.Fatalf("file content = %q, want full replacement", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file %s left behind", e.Name())
		}
	}
}

func TestSaveMissingDirectoryIsIOError(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Save(domain.DefaultSettings())
	var ioErr *domain.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
}

func TestLoadPathResolutionFailure(t *testing.T) {
	repo, err := NewFileRepository(config.FixedLocator(config.AppName, "", ""))
	if err != nil {
		t.Fatalf("NewFileRepository: %v", err)
	}
	_, err = repo.Load()
	var pathErr *domain.PathResolutionError
	if !errors.As(err, &pathErr) {
		t.Fatalf("error = %v, want PathResolutionError", err)
	}
}

func TestSaveRejectsInvalidUTF8Key(t *testing.T) {
	repo, path := newTestRepo(t)
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := repo.Save(domain.Settings{APIKey: strPtr("sk-keep")}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := repo.Save(domain.Settings{APIKey: strPtr("sk-\xff\xfe")})
	var serErr *domain.SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("file left unreadable after rejected save: %v", err)
	}
	if got.APIKey == nil || *got.APIKey != "sk-keep" {
		t.Fatalf("previous settings not preserved: %+v", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected only config.toml in %s, got %d entries", filepath.Dir(path), len(entries))
	}
}
