package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"anki-creator/internal/domain"
)

// Dirs holds the application's own configuration and data directories.
type Dirs struct {
	Config string
	Data   string
}

// Locator resolves where the application keeps its files. Every call
// re-resolves, so changes to the environment are always observed.
type Locator struct {
	resolve func() (Dirs, error)
}

// NewLocator wraps an arbitrary resolver.
func NewLocator(resolve func() (Dirs, error)) (*Locator, error) {
	if resolve == nil {
		return nil, errors.New("resolver is required")
	}
	return &Locator{resolve: resolve}, nil
}

// SystemLocator resolves directories from the live environment of the current platform.
func SystemLocator() *Locator {
	return EnvLocator(AppName, domain.CurrentPlatform(), SystemEnv())
}

// EnvLocator resolves directories for appName from env as platform p would.
func EnvLocator(appName string, p domain.Platform, env Env) *Locator {
	return &Locator{resolve: func() (Dirs, error) {
		if dirs, ok, err := overrideDirs(env); err != nil || ok {
			return dirs, err
		}
		bases, err := BaseDirs(p, env)
		if err != nil {
			return Dirs{}, err
		}
		return Dirs{
			Config: filepath.Join(bases.Config, appName),
			Data:   filepath.Join(bases.Data, appName),
		}, nil
	}}
}

// FixedLocator places appName under explicit base directories.
func FixedLocator(appName, configBase, dataBase string) *Locator {
	return &Locator{resolve: func() (Dirs, error) {
		if strings.TrimSpace(configBase) == "" || strings.TrimSpace(dataBase) == "" {
			return Dirs{}, &domain.PathResolutionError{Op: "base dir", Err: errors.New("base directory is empty")}
		}
		return Dirs{
			Config: filepath.Join(configBase, appName),
			Data:   filepath.Join(dataBase, appName),
		}, nil
	}}
}

// ConfigDir returns the app configuration directory without touching the filesystem.
func (l *Locator) ConfigDir() (string, error) {
	dirs, err := l.resolve()
	if err != nil {
		return "", err
	}
	return dirs.Config, nil
}

// DataDir returns the app local-data directory without touching the filesystem.
func (l *Locator) DataDir() (string, error) {
	dirs, err := l.resolve()
	if err != nil {
		return "", err
	}
	return dirs.Data, nil
}

// ConfigPath returns <config dir>/config.toml.
func (l *Locator) ConfigPath() (string, error) {
	dir, err := l.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// AppConfigDir returns the canonical (absolute, symlink-free) config
// directory. The directory must already exist.
func (l *Locator) AppConfigDir() (string, error) {
	dir, err := l.ConfigDir()
	if err != nil {
		return "", err
	}
	return canonicalize("config dir", dir)
}

// AppDataDir returns the canonical local-data directory. The directory must
// already exist.
func (l *Locator) AppDataDir() (string, error) {
	dir, err := l.DataDir()
	if err != nil {
		return "", err
	}
	return canonicalize("data dir", dir)
}

func canonicalize(op, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &domain.PathResolutionError{Op: op, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &domain.PathResolutionError{Op: op, Err: fmt.Errorf("canonicalize %s: %w", abs, err)}
	}
	return resolved, nil
}
