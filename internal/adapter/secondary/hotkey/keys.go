//go:build (darwin && cgo) || (linux && cgo && x11) || windows

package hotkey

import (
	"fmt"

	"golang.design/x/hotkey"

	"anki-creator/internal/domain"
)

var keyMap = map[domain.Key]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	domain.KeySpace:  hotkey.KeySpace,
	domain.KeyEnter:  hotkey.KeyReturn,
	domain.KeyEscape: hotkey.KeyEscape,
	domain.KeyTab:    hotkey.KeyTab,
	domain.KeyDelete: hotkey.KeyDelete,
	domain.KeyUp:     hotkey.KeyUp,
	domain.KeyDown:   hotkey.KeyDown,
	domain.KeyLeft:   hotkey.KeyLeft,
	domain.KeyRight:  hotkey.KeyRight,
}

func toHotkey(accel domain.Accelerator) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[accel.Key]
	if !ok {
		return nil, 0, fmt.Errorf("%w: key %q has no OS mapping", domain.ErrInvalidShortcut, accel.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(accel.Modifiers))
	for _, m := range accel.Modifiers {
		hm, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("%w: modifier %s has no OS mapping", domain.ErrInvalidShortcut, m)
		}
		mods = append(mods, hm)
	}
	return mods, key, nil
}
