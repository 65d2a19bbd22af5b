package domain

import "strings"

// ResolveModifier maps the portable CommandOrControl modifier to the concrete
// modifier for p. Other modifiers pass through unchanged.
func ResolveModifier(p Platform, m Modifier) Modifier {
	if m != ModCommandOrControl {
		return m
	}
	if p == PlatformDarwin {
		return ModSuper
	}
	return ModCtrl
}

// CopyChord returns the key combination that triggers "copy" on p:
// Command+C on macOS, Ctrl+C everywhere else.
func CopyChord(p Platform) Chord {
	return Chord{
		Modifier: ResolveModifier(p, ModCommandOrControl),
		Key:      KeyC,
	}
}

// NormalizeAPIKey trims surrounding whitespace. An empty result means absent.
func NormalizeAPIKey(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Greeting is the response of the greet command.
func Greeting(name string) string {
	return "Hello, " + name + "! You've been greeted from Go!"
}
