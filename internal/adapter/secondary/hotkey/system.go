//go:build (darwin && cgo) || (linux && cgo && x11) || windows

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
)

var _ domain.ShortcutRegistrar = (*SystemRegistrar)(nil)

// SystemRegistrar registers process-wide OS hotkeys. On macOS the program must
// run under mainthread.Init.
type SystemRegistrar struct {
	mu     sync.Mutex
	active map[string]*registration
}

type registration struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// NewSystemRegistrar creates a registrar backed by the OS hotkey facility.
func NewSystemRegistrar() (domain.ShortcutRegistrar, error) {
	return &SystemRegistrar{active: make(map[string]*registration)}, nil
}

// Register binds accel and calls onTrigger on every key down until unregistered.
func (s *SystemRegistrar) Register(accel domain.Accelerator, onTrigger func()) error {
	id := accel.String()
	mods, key, err := toHotkey(accel)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[id]; ok {
		return fmt.Errorf("%s: %w", id, domain.ErrShortcutInUse)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", id, err)
	}
	reg := &registration{hk: hk, done: make(chan struct{})}
	s.active[id] = reg
	go listen(id, reg, onTrigger)
	logging.Debugf("hotkey %s registered", id)
	return nil
}

func listen(id string, reg *registration, onTrigger func()) {
	for {
		select {
		case <-reg.done:
			return
		case _, ok := <-reg.hk.Keydown():
			if !ok {
				return
			}
			logging.Tracef("hotkey %s pressed", id)
			onTrigger()
		}
	}
}

// Unregister releases accel.
func (s *SystemRegistrar) Unregister(accel domain.Accelerator) error {
	id := accel.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.active[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrShortcutNotRegistered)
	}
	delete(s.active, id)
	return release(id, reg)
}

// UnregisterAll releases every binding, returning the last failure.
func (s *SystemRegistrar) UnregisterAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lastErr error
	for id, reg := range s.active {
		if err := release(id, reg); err != nil {
			lastErr = err
		}
	}
	s.active = make(map[string]*registration)
	return lastErr
}

func release(id string, reg *registration) error {
	close(reg.done)
	if err := reg.hk.Unregister(); err != nil {
		return fmt.Errorf("unregister %s: %w", id, err)
	}
	logging.Debugf("hotkey %s unregistered", id)
	return nil
}
