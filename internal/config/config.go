// Package config manages the user's configuration file at
// ~/.doral-courts/config.yaml: favorite courts, saved query aliases, and
// default preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File holds the persisted configuration document.
type File struct {
	Favorites Favorites                    `yaml:"favorites"`
	Queries   map[string]map[string]string `yaml:"queries"`
	Defaults  Defaults                     `yaml:"defaults"`
}

// Favorites is the user's saved court list.
type Favorites struct {
	Courts []string `yaml:"courts"`
}

// Defaults are preferences applied when a command omits the flag.
type Defaults struct {
	Sport      string `yaml:"sport,omitempty"`
	DateOffset int    `yaml:"date_offset"` // days from today; 0 = today
}

// Config reads and writes one configuration file.
type Config struct {
	path string
}

// Dir returns the application directory (~/.doral-courts), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, ".doral-courts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

// New opens the configuration at path, writing a default document when the
// file does not exist yet. An empty path uses the default location.
func New(path string) (*Config, error) {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	cfg := &Config{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.write(&File{Queries: map[string]map[string]string{}}); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) read() (*File, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if f.Queries == nil {
		f.Queries = map[string]map[string]string{}
	}
	return &f, nil
}

func (c *Config) write(f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Favorites returns the saved court names.
func (c *Config) Favorites() ([]string, error) {
	f, err := c.read()
	if err != nil {
		return nil, err
	}
	return f.Favorites.Courts, nil
}

// AddFavorite saves a court name. Returns false when it was already saved.
func (c *Config) AddFavorite(name string) (bool, error) {
	f, err := c.read()
	if err != nil {
		return false, err
	}
	for _, existing := range f.Favorites.Courts {
		if existing == name {
			return false, nil
		}
	}
	f.Favorites.Courts = append(f.Favorites.Courts, name)
	return true, c.write(f)
}

// RemoveFavorite removes a court name. Returns false when it was not saved.
func (c *Config) RemoveFavorite(name string) (bool, error) {
	f, err := c.read()
	if err != nil {
		return false, err
	}
	kept := f.Favorites.Courts[:0]
	removed := false
	for _, existing := range f.Favorites.Courts {
		if existing == name {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return false, nil
	}
	f.Favorites.Courts = kept
	return true, c.write(f)
}

// Queries returns all saved query aliases.
func (c *Config) Queries() (map[string]map[string]string, error) {
	f, err := c.read()
	if err != nil {
		return nil, err
	}
	return f.Queries, nil
}

// Query returns one saved query's parameters, or nil when the alias is
// unknown.
func (c *Config) Query(name string) (map[string]string, error) {
	queries, err := c.Queries()
	if err != nil {
		return nil, err
	}
	return queries[name], nil
}

// SaveQuery adds or replaces a query alias.
func (c *Config) SaveQuery(name string, params map[string]string) error {
	f, err := c.read()
	if err != nil {
		return err
	}
	f.Queries[name] = params
	return c.write(f)
}

// RemoveQuery deletes a query alias. Returns false when it did not exist.
func (c *Config) RemoveQuery(name string) (bool, error) {
	f, err := c.read()
	if err != nil {
		return false, err
	}
	if _, ok := f.Queries[name]; !ok {
		return false, nil
	}
	delete(f.Queries, name)
	return true, c.write(f)
}

// Defaults returns the stored default preferences.
func (c *Config) Defaults() (Defaults, error) {
	f, err := c.read()
	if err != nil {
		return Defaults{}, err
	}
	return f.Defaults, nil
}

// SetDefaults replaces the stored default preferences.
func (c *Config) SetDefaults(d Defaults) error {
	f, err := c.read()
	if err != nil {
		return err
	}
	f.Defaults = d
	return c.write(f)
}
