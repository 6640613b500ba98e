package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the configuration file location.
const ConfigEnvVar = "BTAGENT_CONFIG"

// GetConfigPath returns the configuration file path. It first checks the
// BTAGENT_CONFIG environment variable, then falls back to ~/.btagent/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".btagent", "config"), nil
}
