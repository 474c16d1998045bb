package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravbench/internal/engine"
)

// Config is the on-disk shape of a benchmark configuration. The engine
// tunables are inlined so every named parameter can be overridden from a
// yaml file without nesting.
type Config struct {
	Params  engine.Params `yaml:",inline"`
	DataDir string        `yaml:"data_dir"`
}

func Default() *Config {
	return &Config{
		Params:  engine.DefaultParams(),
		DataDir: ".gravbench",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
