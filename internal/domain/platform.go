package domain

import "runtime"

// Platform identifies the host OS family.
type Platform string

const (
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
)

// CurrentPlatform returns the platform this binary was built for.
func CurrentPlatform() Platform {
	return Platform(runtime.GOOS)
}

// Modifier is a platform-neutral modifier key.
type Modifier int

const (
	ModCtrl Modifier = iota
	ModAlt
	ModShift
	ModSuper
	// ModCommandOrControl only appears before resolution; see ResolveModifier.
	ModCommandOrControl
)

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "Ctrl"
	case ModAlt:
		return "Alt"
	case ModShift:
		return "Shift"
	case ModSuper:
		return "Super"
	case ModCommandOrControl:
		return "CommandOrControl"
	default:
		return "unknown"
	}
}

// Chord is a single modifier+key combination to synthesize.
type Chord struct {
	Modifier Modifier
	Key      Key
}

func (c Chord) String() string {
	return c.Modifier.String() + "+" + string(c.Key)
}
