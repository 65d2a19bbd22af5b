//go:build cgo && x11

package hotkey

import (
	"golang.design/x/hotkey"

	"anki-creator/internal/domain"
)

// modifierMap maps domain modifiers to X11 modifiers.
var modifierMap = map[domain.Modifier]hotkey.Modifier{
	domain.ModCtrl:  hotkey.ModCtrl,
	domain.ModShift: hotkey.ModShift,
	domain.ModAlt:   hotkey.Mod1, // Alt = Mod1 on X11
	domain.ModSuper: hotkey.Mod4, // Super = Mod4 on X11
}
