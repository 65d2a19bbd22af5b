//go:build !((darwin && cgo) || (linux && cgo && x11) || windows)

package hotkey

import (
	"fmt"

	"anki-creator/internal/domain"
)

// NewSystemRegistrar reports that OS hotkeys are unavailable in this build.
// Linux builds need cgo and the x11 tag, since the X11 backend aborts at
// package init when no display is reachable.
func NewSystemRegistrar() (domain.ShortcutRegistrar, error) {
	return nil, fmt.Errorf("global hotkeys: %w", domain.ErrUnsupportedPlatform)
}
