package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rabidaudio/cdaudio/imagedrive"
	"gopkg.in/yaml.v3"
)

const defaultFPS = 72

// Config is the optional YAML file given with --config.
//
//	fps: 72
//	drives:
//	  - name: /dev/sr0
//	    path: ~/discs/quake
//	cvars:
//	  bgmvolume: 0.7
type Config struct {
	FPS    int                      `yaml:"fps"`
	Drives []imagedrive.DriveConfig `yaml:"drives"`
	Cvars  map[string]float64       `yaml:"cvars"`
}

func checkFPS(fps int) error {
	if fps <= 0 {
		return errors.Errorf("fps must be positive, got %d", fps)
	}
	return nil
}

// loadConfig reads path. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{FPS: defaultFPS}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	for i, d := range cfg.Drives {
		if d.Path == "" {
			return nil, errors.Errorf("drive %d: missing path", i)
		}
		if d.Name == "" {
			cfg.Drives[i].Name = d.Path
		}
	}
	return cfg, nil
}
