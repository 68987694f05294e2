package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the farm configuration.
// Search order: customPath -> ~/.farm/configs/farm.yaml -> ./configs/farm.yaml -> embedded default
//
// A custom path that cannot be read or fails validation is an error. Broken
// files found on the search path are skipped.
func Load(customPath string) (FarmConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FarmConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FarmConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	if userCfgPath := userConfigPath("farm.yaml"); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", "farm.yaml")); ok {
		return cfg, nil
	}

	cfg, err := Parse(defaultFarmYAML)
	if err != nil {
		return DefaultFarmConfig(), nil
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// Parse validates a YAML document and decodes it over the defaults, so
// omitted sections keep their default values.
func Parse(data []byte) (FarmConfig, error) {
	if err := validateDocument(data); err != nil {
		return FarmConfig{}, err
	}

	cfg := DefaultFarmConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FarmConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FarmConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c FarmConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func tryFile(path string) (FarmConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FarmConfig{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return FarmConfig{}, false
	}
	cfg.Source = path
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".farm", "configs", filename)
}
