package usecase

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
)

// AppUseCase is the primary port for the commands the UI layer invokes.
// This represents the application's use cases.
type AppUseCase interface {
	Bootstrap() error
	Settings() domain.Settings
	UpdateSettings(settings domain.Settings) error
	SetAPIKey(key *string) error

	ConfigPath() (string, error)
	ConfigDir() (string, error)
	DataDir() (string, error)

	RegisterShortcut(spec, action string) error
	UnregisterShortcut(spec string) error
	UnregisterAllShortcuts() error
	Shortcuts() []domain.Binding

	PressCopy()
	Greet(name string) string
}

// Deps are the secondary ports the interactor drives.
type Deps struct {
	Repo      domain.SettingsRepository
	Registrar domain.ShortcutRegistrar
	Injector  domain.KeystrokeInjector
	Emitter   domain.EventEmitter
	Platform  domain.Platform
}

// appInteractor implements AppUseCase.
// It depends only on domain layer and secondary ports.
type appInteractor struct {
	repo      domain.SettingsRepository
	registrar domain.ShortcutRegistrar
	injector  domain.KeystrokeInjector
	emitter   domain.EventEmitter
	platform  domain.Platform

	mu       sync.RWMutex
	settings domain.Settings
	bindings map[string]domain.Binding
}

// NewAppUseCase creates a new app use case.
// Dependencies are injected (secondary ports).
func NewAppUseCase(deps Deps) (AppUseCase, error) {
	if deps.Repo == nil || deps.Registrar == nil || deps.Injector == nil || deps.Emitter == nil {
		return nil, errors.New("repo, registrar, injector and emitter are required")
	}
	platform := deps.Platform
	if platform == "" {
		platform = domain.CurrentPlatform()
	}
	return &appInteractor{
		repo:      deps.Repo,
		registrar: deps.Registrar,
		injector:  deps.Injector,
		emitter:   deps.Emitter,
		platform:  platform,
		settings:  domain.DefaultSettings(),
		bindings:  make(map[string]domain.Binding),
	}, nil
}

// Bootstrap loads settings once at startup. A failed load keeps the
// in-memory default so the shell can still start; the error is returned for
// the caller to surface.
func (a *appInteractor) Bootstrap() error {
	settings, err := a.repo.Load()
	if err != nil {
		logging.Errorf("load settings: %v (continuing with defaults)", err)
		return err
	}
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()
	return nil
}

// Settings returns a snapshot of the current settings.
func (a *appInteractor) Settings() domain.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings.Clone()
}

// UpdateSettings persists settings and replaces the snapshot on success.
func (a *appInteractor) UpdateSettings(settings domain.Settings) error {
	settings = settings.Clone()
	if err := a.repo.Save(settings); err != nil {
		return err
	}
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()
	logging.Infof("settings saved (api key set: %t)", settings.HasAPIKey())
	return nil
}

// SetAPIKey trims key and stores it; blank or nil clears it.
func (a *appInteractor) SetAPIKey(key *string) error {
	settings := a.Settings()
	settings.APIKey = domain.NormalizeAPIKey(key)
	return a.UpdateSettings(settings)
}

func (a *appInteractor) ConfigPath() (string, error) {
	return a.repo.ConfigPath()
}

func (a *appInteractor) ConfigDir() (string, error) {
	return a.repo.AppConfigDir()
}

func (a *appInteractor) DataDir() (string, error) {
	return a.repo.AppDataDir()
}

// RegisterShortcut binds spec so that each press emits a
// shortcut-triggered event carrying action.
func (a *appInteractor) RegisterShortcut(spec, action string) error {
	accel, err := domain.ParseAccelerator(spec, a.platform)
	if err != nil {
		return err
	}
	id := accel.String()

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.bindings[id]; ok {
		return fmt.Errorf("%s: %w", id, domain.ErrShortcutInUse)
	}
	err = a.registrar.Register(accel, func() {
		if err := a.emitter.Emit(domain.ShortcutTriggeredEvent, domain.ShortcutPayload{Action: action}); err != nil {
			logging.Warnf("emit %s for %s: %v", domain.ShortcutTriggeredEvent, id, err)
		}
	})
	if err != nil {
		return err
	}
	a.bindings[id] = domain.Binding{Shortcut: id, Action: action}
	logging.Infof("shortcut %s -> %s", id, action)
	return nil
}

// UnregisterShortcut releases spec.
func (a *appInteractor) UnregisterShortcut(spec string) error {
	accel, err := domain.ParseAccelerator(spec, a.platform)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.registrar.Unregister(accel); err != nil {
		return err
	}
	delete(a.bindings, accel.String())
	return nil
}

// UnregisterAllShortcuts releases every shortcut this process registered.
func (a *appInteractor) UnregisterAllShortcuts() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bindings = make(map[string]domain.Binding)
	return a.registrar.UnregisterAll()
}

// Shortcuts lists the active bindings sorted by shortcut.
func (a *appInteractor) Shortcuts() []domain.Binding {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.Binding, 0, len(a.bindings))
	for _, b := range a.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shortcut < out[j].Shortcut })
	return out
}

// PressCopy simulates the platform copy chord. Failures are logged and
// otherwise ignored: a missed keystroke has no recovery path.
func (a *appInteractor) PressCopy() {
	chord := domain.CopyChord(a.platform)
	if err := a.injector.Press(chord); err != nil {
		logging.Warnf("press %s: %v", chord, err)
		return
	}
	logging.Debugf("pressed %s", chord)
}

func (a *appInteractor) Greet(name string) string {
	return domain.Greeting(name)
}
