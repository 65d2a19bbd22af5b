package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Key is the canonical name of a non-modifier key.
type Key string

const (
	KeyC      Key = "C"
	KeySpace  Key = "Space"
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
	KeyTab    Key = "Tab"
	KeyDelete Key = "Delete"
	KeyUp     Key = "Up"
	KeyDown   Key = "Down"
	KeyLeft   Key = "Left"
	KeyRight  Key = "Right"
)

var modifierAliases = map[string]Modifier{
	"commandorcontrol": ModCommandOrControl,
	"cmdorctrl":        ModCommandOrControl,
	"command":          ModSuper,
	"cmd":              ModSuper,
	"super":            ModSuper,
	"meta":             ModSuper,
	"control":          ModCtrl,
	"ctrl":             ModCtrl,
	"alt":              ModAlt,
	"option":           ModAlt,
	"shift":            ModShift,
}

var namedKeys = map[string]Key{
	"space":     KeySpace,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"tab":       KeyTab,
	"delete":    KeyDelete,
	"backspace": KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// Accelerator is a parsed, platform-resolved shortcut.
type Accelerator struct {
	Modifiers []Modifier
	Key       Key
}

// String returns the normalized form used as the registration identity.
func (a Accelerator) String() string {
	parts := make([]string, 0, len(a.Modifiers)+1)
	for _, m := range a.Modifiers {
		parts = append(parts, m.String())
	}
	parts = append(parts, string(a.Key))
	return strings.Join(parts, "+")
}

// ParseAccelerator parses a specification such as "CommandOrControl+Shift+F"
// and resolves portable modifiers for p. Errors wrap ErrInvalidShortcut.
func ParseAccelerator(spec string, p Platform) (Accelerator, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Accelerator{}, fmt.Errorf("%w: empty specification", ErrInvalidShortcut)
	}

	seen := make(map[Modifier]bool)
	var key Key
	for _, raw := range strings.Split(trimmed, "+") {
		token := strings.TrimSpace(raw)
		if token == "" {
			return Accelerator{}, fmt.Errorf("%w: empty token in %q", ErrInvalidShortcut, spec)
		}
		lower := strings.ToLower(token)
		if m, ok := modifierAliases[lower]; ok {
			if key != "" {
				return Accelerator{}, fmt.Errorf("%w: modifier %q after key in %q", ErrInvalidShortcut, token, spec)
			}
			seen[ResolveModifier(p, m)] = true
			continue
		}
		if key != "" {
			return Accelerator{}, fmt.Errorf("%w: more than one key in %q", ErrInvalidShortcut, spec)
		}
		k, err := parseKey(lower)
		if err != nil {
			return Accelerator{}, fmt.Errorf("%w: %v", ErrInvalidShortcut, err)
		}
		key = k
	}
	if key == "" {
		return Accelerator{}, fmt.Errorf("%w: no key in %q", ErrInvalidShortcut, spec)
	}

	mods := make([]Modifier, 0, len(seen))
	for m := range seen {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i] < mods[j] })
	return Accelerator{Modifiers: mods, Key: key}, nil
}

func parseKey(lower string) (Key, error) {
	if k, ok := namedKeys[lower]; ok {
		return k, nil
	}
	if len(lower) == 1 {
		c := lower[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return Key(strings.ToUpper(lower)), nil
		}
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(lower[1:], "%d", &n); err == nil && fmt.Sprint(n) == lower[1:] && n >= 1 && n <= 12 {
			return Key(fmt.Sprintf("F%d", n)), nil
		}
	}
	return "", fmt.Errorf("unknown key %q", lower)
}
