package hotkey

import (
	"golang.design/x/hotkey"

	"anki-creator/internal/domain"
)

// modifierMap maps domain modifiers to Win32 hotkey modifiers.
var modifierMap = map[domain.Modifier]hotkey.Modifier{
	domain.ModCtrl:  hotkey.ModCtrl,
	domain.ModShift: hotkey.ModShift,
	domain.ModAlt:   hotkey.ModAlt,
	domain.ModSuper: hotkey.ModWin,
}
