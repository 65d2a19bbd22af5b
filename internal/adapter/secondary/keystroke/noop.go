package keystroke

import "anki-creator/internal/domain"

// NoopInjector implements domain.KeystrokeInjector with no-op behavior.
// Useful for testing or headless environments.
type NoopInjector struct{}

// NewNoopInjector creates a new no-op injector.
func NewNoopInjector() domain.KeystrokeInjector {
	return &NoopInjector{}
}

// Press does nothing and always succeeds.
func (n *NoopInjector) Press(chord domain.Chord) error {
	return nil
}
