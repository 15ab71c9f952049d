package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Config is the on-disk client configuration. Everything has a usable
// default so a missing config file is not an error.
type Config struct {
	path string

	// RegistryURL is where sync pulls the registry manifest from.
	RegistryURL string `json:"registry-url"`

	// ManifestPath is the local manifest the producer commands edit.
	ManifestPath string `json:"manifest-path"`

	// DownloadDir receives fetched artifacts. Empty means the platform
	// temp dir.
	DownloadDir string `json:"download-dir"`
}

const (
	DefaultConfigPath   = "~/.config/dpm/config.json"
	DefaultManifestPath = "~/.config/dpm/manifest.json"
)

// Load reads the config from DPM_CONFIG or the default location, creating
// a default config file on first use.
func Load() (*Config, error) {
	if loc := os.Getenv("DPM_CONFIG"); loc != "" {
		return loadFile(loc)
	}

	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}

	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, err
	}

	mpath, err := homedir.Expand(DefaultManifestPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		path:         path,
		ManifestPath: mpath,
	}

	err = cfg.Save()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening config %s", path)
	}

	defer f.Close()

	var cfg Config

	err = json.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}

	cfg.path = path

	if cfg.ManifestPath == "" {
		cfg.ManifestPath, err = homedir.Expand(DefaultManifestPath)
		if err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Config) Save() error {
	f, err := os.Create(c.path)
	if err != nil {
		return errors.Wrapf(err, "writing config %s", c.path)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(c)
}
