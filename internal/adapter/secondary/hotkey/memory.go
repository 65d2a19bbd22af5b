package hotkey

import (
	"fmt"
	"sort"
	"sync"

	"anki-creator/internal/domain"
)

var _ domain.ShortcutRegistrar = (*MemoryRegistrar)(nil)

// MemoryRegistrar keeps bindings in process without touching the OS. Trigger
// fires a binding by hand, which lets headless sessions and tests drive the
// same event path as a real key press.
type MemoryRegistrar struct {
	mu       sync.Mutex
	bindings map[string]func()
}

// NewMemoryRegistrar creates an empty registrar.
func NewMemoryRegistrar() *MemoryRegistrar {
	return &MemoryRegistrar{bindings: make(map[string]func())}
}

// Register binds accel. Binding the same accelerator twice fails.
func (m *MemoryRegistrar) Register(accel domain.Accelerator, onTrigger func()) error {
	id := accel.String()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bindings[id]; ok {
		return fmt.Errorf("%s: %w", id, domain.ErrShortcutInUse)
	}
	m.bindings[id] = onTrigger
	return nil
}

// Unregister removes accel.
func (m *MemoryRegistrar) Unregister(accel domain.Accelerator) error {
	id := accel.String()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bindings[id]; !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrShortcutNotRegistered)
	}
	delete(m.bindings, id)
	return nil
}

// UnregisterAll removes every binding.
func (m *MemoryRegistrar) UnregisterAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = make(map[string]func())
	return nil
}

// Trigger runs the callback bound to accel and reports whether one existed.
func (m *MemoryRegistrar) Trigger(accel domain.Accelerator) bool {
	m.mu.Lock()
	fn, ok := m.bindings[accel.String()]
	m.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

// Registered returns the normalized accelerators currently bound, sorted.
func (m *MemoryRegistrar) Registered() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.bindings))
	for id := range m.bindings {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
