package keystroke

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"anki-creator/internal/domain"
)

func TestCommandForCopyChord(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		wantName string
		wantArgs []string
	}{
		{
			platform: domain.PlatformDarwin,
			wantName: "osascript",
			wantArgs: []string{"-e", `tell application "System Events" to keystroke "c" using command down`},
		},
		{
			platform: domain.PlatformWindows,
			wantName: "powershell",
			wantArgs: []string{"-NoProfile", "-NonInteractive", "-Command", `(New-Object -ComObject WScript.Shell).SendKeys('^c')`},
		},
		{
			platform: domain.PlatformLinux,
			wantName: "xdotool",
			wantArgs: []string{"key", "--clearmodifiers", "ctrl+c"},
		},
	}
	for _, tt := range tests {
		name, args, err := Command(tt.platform, domain.CopyChord(tt.platform))
		if err != nil {
			t.Fatalf("Command(%s) returned error: %v", tt.platform, err)
		}
		if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
			t.Fatalf("Command(%s) = %s %q, want %s %q", tt.platform, name, args, tt.wantName, tt.wantArgs)
		}
	}
}

func TestCommandRejectsUnsupportedChords(t *testing.T) {
	if _, _, err := Command(domain.PlatformWindows, domain.Chord{Modifier: domain.ModSuper, Key: domain.KeyC}); !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("windows super chord error = %v", err)
	}
	if _, _, err := Command(domain.PlatformLinux, domain.Chord{Modifier: domain.ModCtrl, Key: domain.KeySpace}); err == nil {
		t.Fatal("expected error for named key")
	}
}

func TestPressRunsCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	inj := NewInjector(domain.PlatformLinux, func(name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return nil, nil
	})
	if err := inj.Press(domain.CopyChord(domain.PlatformLinux)); err != nil {
		t.Fatalf("Press returned error: %v", err)
	}
	if gotName != "xdotool" || gotArgs[len(gotArgs)-1] != "ctrl+c" {
		t.Fatalf("ran %s %q", gotName, gotArgs)
	}
}

func TestPressIncludesOutputOnFailure(t *testing.T) {
	inj := NewInjector(domain.PlatformDarwin, func(name string, args ...string) ([]byte, error) {
		return []byte("not authorized\n"), errors.New("exit status 1")
	})
	err := inj.Press(domain.CopyChord(domain.PlatformDarwin))
	if err == nil || !strings.Contains(err.Error(), "not authorized") {
		t.Fatalf("error = %v, want output included", err)
	}
}
