package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"anki-creator/internal/config"
	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
)

var _ domain.SettingsRepository = (*FileRepository)(nil)

// FileRepository implements domain.SettingsRepository using a TOML file.
// This is a secondary adapter. It holds no state beyond its locator, so every
// call reflects the current filesystem.
type FileRepository struct {
	locator *config.Locator
}

// NewFileRepository creates a new file-based settings repository.
func NewFileRepository(locator *config.Locator) (*FileRepository, error) {
	if locator == nil {
		return nil, errors.New("locator is required")
	}
	return &FileRepository{locator: locator}, nil
}

// persistedSettings represents the TOML structure on disk.
type persistedSettings struct {
	APIKey *string `toml:"api_key,omitempty"`
}

// ConfigPath resolves <config dir>/<app>/config.toml.
func (f *FileRepository) ConfigPath() (string, error) {
	return f.locator.ConfigPath()
}

// AppConfigDir returns the canonical configuration directory.
func (f *FileRepository) AppConfigDir() (string, error) {
	return f.locator.AppConfigDir()
}

// AppDataDir returns the canonical local-data directory.
func (f *FileRepository) AppDataDir() (string, error) {
	return f.locator.AppDataDir()
}

// Load reads settings from disk. On first run the directory and a default
// file are created.
func (f *FileRepository) Load() (domain.Settings, error) {
	path, err := f.locator.ConfigPath()
	if err != nil {
		return domain.Settings{}, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Settings{}, &domain.IOError{Op: "create config dir", Path: dir, Err: err}
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Infof("config %s not found, writing defaults", path)
		settings := domain.DefaultSettings()
		if err := f.Save(settings); err != nil {
			return domain.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, &domain.IOError{Op: "stat config", Path: path, Err: err}
	}
	if info.IsDir() {
		return domain.Settings{}, &domain.IOError{Op: "read config", Path: path, Err: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Settings{}, &domain.IOError{Op: "read config", Path: path, Err: err}
	}
	settings, err := decodeSettings(data, path)
	if err != nil {
		return domain.Settings{}, err
	}
	logging.Debugf("loaded config %s (api key set: %t)", path, settings.HasAPIKey())
	return settings, nil
}

func decodeSettings(data []byte, path string) (domain.Settings, error) {
	var persisted persistedSettings
	if err := toml.Unmarshal(data, &persisted); err != nil {
		parseErr := &domain.ParseError{Path: path, Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			parseErr.Line, parseErr.Column = decodeErr.Position()
		}
		return domain.Settings{}, parseErr
	}
	return domain.Settings{APIKey: persisted.APIKey}, nil
}

func encodeSettings(settings domain.Settings) ([]byte, error) {
	// go-toml writes invalid UTF-8 verbatim, producing a file it cannot read back.
	if settings.APIKey != nil && !utf8.ValidString(*settings.APIKey) {
		return nil, &domain.SerializationError{Err: errors.New("api_key is not valid UTF-8")}
	}
	data, err := toml.Marshal(persistedSettings{APIKey: settings.APIKey})
	if err != nil {
		return nil, &domain.SerializationError{Err: err}
	}
	return data, nil
}

// Save replaces the settings file. Content goes to a temp file in the same
// directory which is then renamed over the target, so readers never observe
// a partial write.
func (f *FileRepository) Save(settings domain.Settings) error {
	path, err := f.locator.ConfigPath()
	if err != nil {
		return err
	}
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return &domain.IOError{Op: "create temp file", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	cleaned := false
	defer func() {
		if !cleaned {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return &domain.IOError{Op: "chmod temp file", Path: tmpName, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &domain.IOError{Op: "write temp file", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &domain.IOError{Op: "sync temp file", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.IOError{Op: "close temp file", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &domain.IOError{Op: "rename temp file", Path: path, Err: fmt.Errorf("%s: %w", tmpName, err)}
	}
	cleaned = true
	logging.Debugf("saved config %s", path)
	return nil
}
