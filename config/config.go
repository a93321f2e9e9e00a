// Package config provides the persisted settings store for Pxls Desktop.
// Settings are a flat YAML mapping of option names to values, rewritten
// in full on every change.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yllada/pxls-desktop/common"
	"gopkg.in/yaml.v3"
)

// Option keys.
const (
	// KeyEnableRichPresence toggles Discord rich presence publishing.
	KeyEnableRichPresence = "enableRichPresence"
)

// Defaults returns the declared default for every known option.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyEnableRichPresence: true,
	}
}

// Store is a small key/value settings store backed by a YAML file.
// Writes are durable before SetBool returns.
type Store struct {
	mu       sync.Mutex
	path     string
	values   map[string]interface{}
	defaults map[string]interface{}
}

// DefaultPath returns the settings file location in the config directory.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.SettingsFileName), nil
}

// Open loads the settings file at path. A missing file is not an error.
// A file that cannot be read or parsed yields a store holding only the
// defaults together with an error wrapping common.ErrConfigLoad; the store
// is still usable and the next SetBool overwrites the bad file.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		values:   make(map[string]interface{}),
		defaults: Defaults(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return s, fmt.Errorf("%w: %s: %v", common.ErrConfigLoad, path, err)
	}
	if values != nil {
		s.values = values
	}

	return s, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Bool returns the persisted boolean for key, or its declared default.
// A persisted value of the wrong type is ignored.
func (s *Store) Bool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[key].(bool); ok {
		return v
	}
	v, _ := s.defaults[key].(bool)
	return v
}

// SetBool stores value under key and flushes the whole file to disk.
// On failure the in-memory value is rolled back.
func (s *Store) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value

	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// save writes values to a temp file in the same directory, syncs it and
// renames it over the settings file. Callers hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: creating directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("%w: serializing: %v", common.ErrConfigSave, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}
