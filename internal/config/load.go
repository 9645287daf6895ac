package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names a config file when no -config flag is given.
	EnvConfig = "BREP_CONFIG"

	localFile = "brep.yaml"
	userFile  = "config.yaml"
)

// Load builds the configuration from defaults, then one config file, then
// flags. A file named by -config or $BREP_CONFIG must exist; the project
// and user files are used only when present.
func Load() (*Config, error) {
	cfg := Default()

	path, err := resolveConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// resolveConfigFile picks the config file to read, or "" for none.
func resolveConfigFile() (string, error) {
	for _, explicit := range []string{ConfigPath(), os.Getenv(EnvConfig)} {
		if explicit == "" {
			continue
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// searchPaths lists the implicit config locations, project file first.
func searchPaths() []string {
	paths := []string{localFile}
	if dir := ConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, userFile))
	}
	return paths
}

// ConfigDir returns the per-user brep config directory, or "" when the
// platform reports none.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "brep")
}

// DefaultPath is where Save writes: the user config file, or the project
// file when there is no user config directory.
func DefaultPath() string {
	if dir := ConfigDir(); dir != "" {
		return filepath.Join(dir, userFile)
	}
	return localFile
}

// loadFromFile decodes a YAML file over cfg. Unknown keys are rejected and
// an empty file leaves cfg unchanged.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
