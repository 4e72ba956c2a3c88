// Package preference persists the single "enabled" switch that shows or
// hides the floating control.
package preference

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/smart-reader/pkg/storage"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "smart-reader"

// Preferences is the persisted document.
type Preferences struct {
	Enabled bool `yaml:"enabled"`
}

// Defaults apply when no file exists yet.
func Defaults() Preferences {
	return Preferences{Enabled: true}
}

// DefaultPath returns $XDG_CONFIG_HOME/smart-reader/preferences.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "preferences.yaml")
}

// Store reads and writes the preference file.
type Store struct {
	path   string
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Load returns the stored preferences, or Defaults when the file is missing.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	p := Defaults()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p atomically.
func (s *Store) Save(p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := storage.SaveFile(s.path, data); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// SetEnabled loads, updates and saves the enabled flag.
func (s *Store) SetEnabled(enabled bool) error {
	p, err := s.Load()
	if err != nil {
		p = Defaults()
	}
	p.Enabled = enabled
	return s.Save(p)
}

// Watch calls onChange with the current preferences and then after every
// change to the file, until ctx is done. Only changes to the value are
// reported.
func (s *Store) Watch(ctx context.Context, onChange func(Preferences)) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create preference directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// The directory is watched so atomic replaces are seen.
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	last, err := s.Load()
	if err != nil {
		s.logger.Warn("Failed to load preferences, using defaults", "error", err)
		last = Defaults()
	}
	onChange(last)

	name := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			p, err := s.Load()
			if err != nil {
				s.logger.Warn("Ignoring unreadable preferences", "error", err)
				continue
			}
			if p == last {
				continue
			}
			last = p
			s.logger.Info("Preferences changed", "enabled", p.Enabled)
			onChange(p)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Preference watcher error", "error", err)
		}
	}
}
