//go:build cgo

package hotkey

import (
	"golang.design/x/hotkey"

	"anki-creator/internal/domain"
)

// modifierMap maps domain modifiers to hotkey modifiers on macOS.
var modifierMap = map[domain.Modifier]hotkey.Modifier{
	domain.ModCtrl:  hotkey.ModCtrl,
	domain.ModShift: hotkey.ModShift,
	domain.ModAlt:   hotkey.ModOption,
	domain.ModSuper: hotkey.ModCmd,
}
