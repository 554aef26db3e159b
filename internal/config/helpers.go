package config

import (
	"os"
	"path/filepath"
)

// DefaultHomeDir returns the default movierag home directory.
// It uses ~/.movierag or falls back to a temporary directory if user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".movierag")
	}
	return filepath.Join(userHome, ".movierag")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"
