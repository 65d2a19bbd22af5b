package domain

// SettingsRepository is a secondary port that defines how to persist settings.
// This interface is defined in the domain layer and implemented by adapters.
type SettingsRepository interface {
	Load() (Settings, error)
	Save(settings Settings) error
	ConfigPath() (string, error)
	AppConfigDir() (string, error)
	AppDataDir() (string, error)
}

// ShortcutRegistrar is a secondary port over the OS global-shortcut facility.
// Implementations must return ErrShortcutInUse when the accelerator is
// already bound by this process.
type ShortcutRegistrar interface {
	Register(accel Accelerator, onTrigger func()) error
	Unregister(accel Accelerator) error
	UnregisterAll() error
}

// KeystrokeInjector is a secondary port that synthesizes key presses.
type KeystrokeInjector interface {
	Press(chord Chord) error
}

// EventEmitter is a secondary port that delivers named events to the UI layer.
type EventEmitter interface {
	Emit(event string, payload any) error
}
