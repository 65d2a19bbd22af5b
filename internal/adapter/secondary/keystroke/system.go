package keystroke

import (
	"fmt"
	"os/exec"
	"strings"

	"anki-creator/internal/domain"
)

// Runner executes an external command and returns its combined output.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// SystemInjector implements domain.KeystrokeInjector with the platform's
// scripting tool: osascript on macOS, PowerShell SendKeys on Windows and
// xdotool elsewhere.
// This is a secondary adapter.
type SystemInjector struct {
	platform domain.Platform
	run      Runner
}

// NewSystemInjector creates an injector for the current platform.
func NewSystemInjector() *SystemInjector {
	return &SystemInjector{platform: domain.CurrentPlatform(), run: execRunner}
}

// NewInjector creates an injector for p using run to execute commands.
func NewInjector(p domain.Platform, run Runner) *SystemInjector {
	if run == nil {
		run = execRunner
	}
	return &SystemInjector{platform: p, run: run}
}

// Press sends chord to the focused application.
func (s *SystemInjector) Press(chord domain.Chord) error {
	name, args, err := Command(s.platform, chord)
	if err != nil {
		return err
	}
	output, err := s.run(name, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Command builds the command line that presses chord on p.
func Command(p domain.Platform, chord domain.Chord) (string, []string, error) {
	key := strings.ToLower(string(chord.Key))
	if len(key) != 1 {
		return "", nil, fmt.Errorf("chord %s: only single character keys can be injected", chord)
	}

	switch p {
	case domain.PlatformDarwin:
		using, ok := map[domain.Modifier]string{
			domain.ModSuper: "command down",
			domain.ModCtrl:  "control down",
			domain.ModAlt:   "option down",
			domain.ModShift: "shift down",
		}[chord.Modifier]
		if !ok {
			return "", nil, fmt.Errorf("chord %s: %w", chord, domain.ErrUnsupportedPlatform)
		}
		script := fmt.Sprintf(`tell application "System Events" to keystroke "%s" using %s`, key, using)
		return "osascript", []string{"-e", script}, nil
	case domain.PlatformWindows:
		prefix, ok := map[domain.Modifier]string{
			domain.ModCtrl:  "^",
			domain.ModAlt:   "%",
			domain.ModShift: "+",
		}[chord.Modifier]
		if !ok {
			return "", nil, fmt.Errorf("chord %s: %w", chord, domain.ErrUnsupportedPlatform)
		}
		script := fmt.Sprintf(`(New-Object -ComObject WScript.Shell).SendKeys('%s%s')`, prefix, key)
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil
	default:
		mod, ok := map[domain.Modifier]string{
			domain.ModCtrl:  "ctrl",
			domain.ModAlt:   "alt",
			domain.ModShift: "shift",
			domain.ModSuper: "super",
		}[chord.Modifier]
		if !ok {
			return "", nil, fmt.Errorf("chord %s: %w", chord, domain.ErrUnsupportedPlatform)
		}
		return "xdotool", []string{"key", "--clearmodifiers", mod + "+" + key}, nil
	}
}
