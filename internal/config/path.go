package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"anki-creator/internal/domain"
)

const (
	// AppName is the directory segment shared by every platform.
	AppName = "anki-creator"
	// ConfigFileName is the settings file inside the app config directory.
	ConfigFileName = "config.toml"
	// HomeEnv overrides both app directories when set.
	HomeEnv = "ANKI_CREATOR_HOME"
)

// Env is the slice of the process environment that directory resolution reads.
type Env struct {
	Getenv func(string) string
	Home   func() (string, error)
}

// SystemEnv reads the live process environment on every call.
func SystemEnv() Env {
	return Env{Getenv: os.Getenv, Home: os.UserHomeDir}
}

// Bases holds the OS-level configuration and local-data directories, before
// the application segment is appended.
type Bases struct {
	Config string
	Data   string
}

// BaseDirs resolves the OS configuration and local-data base directories for p.
//
//	darwin:  ~/Library/Application Support (both)
//	windows: %APPDATA%, %LOCALAPPDATA%
//	other:   $XDG_CONFIG_HOME or ~/.config, $XDG_DATA_HOME or ~/.local/share
func BaseDirs(p domain.Platform, env Env) (Bases, error) {
	switch p {
	case domain.PlatformDarwin:
		home, err := homeDir(env)
		if err != nil {
			return Bases{}, err
		}
		support := filepath.Join(home, "Library", "Application Support")
		return Bases{Config: support, Data: support}, nil
	case domain.PlatformWindows:
		cfg := strings.TrimSpace(env.Getenv("APPDATA"))
		if cfg == "" {
			return Bases{}, &domain.PathResolutionError{Op: "config dir", Err: errors.New("APPDATA is not set")}
		}
		data := strings.TrimSpace(env.Getenv("LOCALAPPDATA"))
		if data == "" {
			return Bases{}, &domain.PathResolutionError{Op: "data dir", Err: errors.New("LOCALAPPDATA is not set")}
		}
		return Bases{Config: filepath.Clean(cfg), Data: filepath.Clean(data)}, nil
	default:
		cfg, cfgOK := xdgDir(env, "XDG_CONFIG_HOME")
		data, dataOK := xdgDir(env, "XDG_DATA_HOME")
		if !cfgOK || !dataOK {
			home, err := homeDir(env)
			if err != nil {
				return Bases{}, err
			}
			if !cfgOK {
				cfg = filepath.Join(home, ".config")
			}
			if !dataOK {
				data = filepath.Join(home, ".local", "share")
			}
		}
		return Bases{Config: cfg, Data: data}, nil
	}
}

// xdgDir honours an XDG variable only when it holds an absolute path, as the XDG
// Base Directory rules require.
func xdgDir(env Env, key string) (string, bool) {
	v := strings.TrimSpace(env.Getenv(key))
	if v == "" || !filepath.IsAbs(v) {
		return "", false
	}
	return filepath.Clean(v), true
}

func homeDir(env Env) (string, error) {
	var home string
	var err error
	if env.Home != nil {
		home, err = env.Home()
	}
	if err == nil && strings.TrimSpace(home) == "" {
		err = errors.New("home directory not found")
	}
	if err != nil {
		return "", &domain.PathResolutionError{Op: "home dir", Err: err}
	}
	return filepath.Clean(home), nil
}

// overrideDirs returns the app directories named by HomeEnv, if set.
func overrideDirs(env Env) (Dirs, bool, error) {
	raw := strings.TrimSpace(env.Getenv(HomeEnv))
	if raw == "" {
		return Dirs{}, false, nil
	}
	dir, err := filepath.Abs(filepath.Clean(raw))
	if err != nil {
		return Dirs{}, false, &domain.PathResolutionError{Op: HomeEnv, Err: fmt.Errorf("%q: %w", raw, err)}
	}
	return Dirs{Config: dir, Data: filepath.Join(dir, "data")}, true, nil
}
