package domain

// Settings is the persisted user configuration.
// This is a pure domain model with no dependencies on external concerns.
type Settings struct {
	APIKey *string
}

// DefaultSettings returns the settings written on first run: every optional
// field absent.
func DefaultSettings() Settings {
	return Settings{}
}

// HasAPIKey reports whether an API key is configured.
func (s Settings) HasAPIKey() bool {
	return s.APIKey != nil
}

// Equal compares two settings field by field.
func (s Settings) Equal(other Settings) bool {
	switch {
	case s.APIKey == nil && other.APIKey == nil:
		return true
	case s.APIKey == nil || other.APIKey == nil:
		return false
	default:
		return *s.APIKey == *other.APIKey
	}
}

// Clone returns a copy that shares no pointers with s.
func (s Settings) Clone() Settings {
	if s.APIKey == nil {
		return Settings{}
	}
	key := *s.APIKey
	return Settings{APIKey: &key}
}

// ShortcutTriggeredEvent is the event name emitted to the UI layer when a
// registered global shortcut fires.
const ShortcutTriggeredEvent = "shortcut-triggered"

// ShortcutPayload is the body of a ShortcutTriggeredEvent.
type ShortcutPayload struct {
	Action string `json:"action"`
}

// Binding associates a normalized accelerator with the action re-emitted on trigger.
type Binding struct {
	Shortcut string `json:"shortcut"`
	Action   string `json:"action"`
}

// DefaultBindings are registered when the shell starts.
func DefaultBindings() []Binding {
	return []Binding{
		{Shortcut: "CommandOrControl+F", Action: "focusSearch"},
	}
}
