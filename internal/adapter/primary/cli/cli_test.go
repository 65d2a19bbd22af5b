package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigSetThenGet(t *testing.T) {
	home := t.TempDir()

	out, err := runCLI(t, "--config-home", home, "config", "set", "--api-key", "  sk-test-123 ")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if !strings.Contains(out, "api_key set=true") {
		t.Fatalf("unexpected set output %q", out)
	}

	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `api_key = 'sk-test-123'`) && !strings.Contains(string(data), `api_key = "sk-test-123"`) {
		t.Fatalf("config file missing trimmed key:\n%s", data)
	}

	out, err = runCLI(t, "--config-home", home, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if !strings.Contains(out, `"sk-t***-123"`) {
		t.Fatalf("expected masked key, got %q", out)
	}

	out, err = runCLI(t, "--config-home", home, "config", "get", "--reveal")
	if err != nil {
		t.Fatalf("config get --reveal: %v", err)
	}
	if !strings.Contains(out, `"sk-test-123"`) {
		t.Fatalf("expected full key, got %q", out)
	}

	if _, err := runCLI(t, "--config-home", home, "config", "set", "--clear-api-key"); err != nil {
		t.Fatalf("config set --clear-api-key: %v", err)
	}
	out, err = runCLI(t, "--config-home", home, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if !strings.Contains(out, `"api_key": null`) {
		t.Fatalf("expected cleared key, got %q", out)
	}
}

func TestConfigSetRequiresAFlag(t *testing.T) {
	if _, err := runCLI(t, "--config-home", t.TempDir(), "config", "set"); err == nil {
		t.Fatalf("expected error without flags")
	}
}

func TestConfigSetRefusesMalformedFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	original := []byte("api_key = \n")
	if err := os.WriteFile(path, original, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := runCLI(t, "--config-home", home, "config", "set", "--api-key", "new")
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if !bytes.Equal(data, original) {
		t.Fatalf("malformed file was overwritten: %q", data)
	}
}

func TestConfigPathAndDirs(t *testing.T) {
	home := t.TempDir()

	out, err := runCLI(t, "--config-home", home, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(home, "config.toml"); got != want {
		t.Fatalf("config path = %q, want %q", got, want)
	}

	out, err = runCLI(t, "--config-home", home, "dirs")
	if err != nil {
		t.Fatalf("dirs: %v", err)
	}
	if !strings.Contains(out, "data    (unavailable") {
		t.Fatalf("missing data dir should be reported, got %q", out)
	}

	if err := os.MkdirAll(filepath.Join(home, "data"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out, err = runCLI(t, "--config-home", home, "dirs")
	if err != nil {
		t.Fatalf("dirs: %v", err)
	}
	if strings.Contains(out, "unavailable") {
		t.Fatalf("expected both dirs resolved, got %q", out)
	}
}

func TestShortcutParse(t *testing.T) {
	cases := []struct {
		platform string
		spec     string
		want     string
	}{
		{"darwin", "cmdorctrl+shift+f", "Shift+Super+F"},
		{"linux", "CommandOrControl+Shift+F", "Ctrl+Shift+F"},
		{"windows", "alt+f4", "Alt+F4"},
	}
	for _, tc := range cases {
		out, err := runCLI(t, "shortcut", "parse", "--platform", tc.platform, tc.spec)
		if err != nil {
			t.Fatalf("parse %q on %s: %v", tc.spec, tc.platform, err)
		}
		if got := strings.TrimSpace(out); got != tc.want {
			t.Fatalf("parse %q on %s = %q, want %q", tc.spec, tc.platform, got, tc.want)
		}
	}

	if _, err := runCLI(t, "shortcut", "parse", "Ctrl+Shift"); !errors.Is(err, domain.ErrInvalidShortcut) {
		t.Fatalf("expected ErrInvalidShortcut, got %v", err)
	}
}

func TestParseBindings(t *testing.T) {
	got, err := parseBindings([]string{"Ctrl+K = askAI", "Alt+F=focusSearch"})
	if err != nil {
		t.Fatalf("parseBindings: %v", err)
	}
	want := []domain.Binding{{Shortcut: "Ctrl+K", Action: "askAI"}, {Shortcut: "Alt+F", Action: "focusSearch"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("parseBindings = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"Ctrl+K", "=askAI", "Ctrl+K="} {
		if _, err := parseBindings([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("short"); got != "*****" {
		t.Fatalf("maskKey(short) = %q", got)
	}
	if got := maskKey("sk-abcdefgh-1234"); got != "sk-a********1234" {
		t.Fatalf("maskKey = %q", got)
	}
}

func TestHandleShellLog(t *testing.T) {
	t.Cleanup(func() { logging.SetVerbosity(0) })
	var out bytes.Buffer
	session := 0

	if err := handleShellLog(&out, []string{"--level", "debug"}, &session); err != nil {
		t.Fatalf("log --level: %v", err)
	}
	if logging.LevelName() != "debug" {
		t.Fatalf("level = %s, want debug", logging.LevelName())
	}
	if session != logging.Verbosity() {
		t.Fatalf("session verbosity %d, logging verbosity %d", session, logging.Verbosity())
	}

	out.Reset()
	if err := handleShellLog(&out, []string{"-s"}, &session); err != nil {
		t.Fatalf("log -s: %v", err)
	}
	if !strings.Contains(out.String(), "debug") {
		t.Fatalf("show output %q", out.String())
	}

	if err := handleShellLog(&out, []string{"--level", "loud"}, &session); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestWireWithoutSystemHotkeys(t *testing.T) {
	t.Cleanup(func() { configHome = "" })
	configHome = t.TempDir()

	w, err := wire(false)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if w.uc == nil || w.hub == nil || w.registrar == nil {
		t.Fatalf("incomplete wiring: %+v", w)
	}
	if err := w.uc.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := w.uc.RegisterShortcut("CommandOrControl+F", "focusSearch"); err != nil {
		t.Fatalf("RegisterShortcut: %v", err)
	}
}

func TestExecuteArgsKeepsSessionFlags(t *testing.T) {
	t.Cleanup(func() {
		configHome = ""
		verbosity = 0
		logging.SetVerbosity(0)
	})
	home := t.TempDir()
	configHome = home
	verbosity = 2

	if err := executeArgs([]string{"config", "set", "--api-key", "sk-shell"}); err != nil {
		t.Fatalf("executeArgs: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	if err != nil {
		t.Fatalf("config not written under --config-home: %v", err)
	}
	if !strings.Contains(string(data), "sk-shell") {
		t.Fatalf("unexpected config content %q", data)
	}
	if configHome != home {
		t.Fatalf("configHome = %q, want %q", configHome, home)
	}
	if verbosity != 2 || logging.Verbosity() != 2 {
		t.Fatalf("verbosity = %d (logging %d), want 2", verbosity, logging.Verbosity())
	}
}

func TestConfigSetRejectsInvalidUTF8Key(t *testing.T) {
	home := t.TempDir()

	_, err := runCLI(t, "--config-home", home, "config", "set", "--api-key", "sk-\xff")
	var serErr *domain.SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}

	if _, err := runCLI(t, "--config-home", home, "config", "set", "--api-key", "sk-ok"); err != nil {
		t.Fatalf("config left unusable after rejected key: %v", err)
	}
}

func TestMaskKeyKeepsRunesWhole(t *testing.T) {
	got := maskKey("ключ-абвгдежз")
	if !utf8.ValidString(got) {
		t.Fatalf("maskKey produced invalid UTF-8: %q", got)
	}
	if want := "ключ*****дежз"; got != want {
		t.Fatalf("maskKey = %q, want %q", got, want)
	}
}
