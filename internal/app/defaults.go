package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetDefaults returns application default paths, checking environment variables first.
// A .env file in the working directory is loaded before the lookup, if present.
// Environment variables:
//   - JT_CONFIG_PATH: config file location (default: ~/.config/jt.toml)
//   - JT_HOME: base directory for jt data (default: ~/.local/share/jt)
func GetDefaults() (map[string]string, error) {
	// Best-effort: a missing .env file is not an error.
	_ = godotenv.Load()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking JT_CONFIG_PATH env var first,
// then falling back to the default ~/.config/jt.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("JT_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "jt.toml"), nil
}

// getBaseDir returns the base directory for jt data, checking JT_HOME env var first,
// then falling back to the XDG default ~/.local/share/jt.
func getBaseDir() (string, error) {
	if path := os.Getenv("JT_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "jt"), nil
}
