package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "mnemo"

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory and its parents if needed.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0o755)
}

// SaveTOMLFile encodes v into a TOML file, replacing it.
func SaveTOMLFile(v any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}

// GetAbsolutePath returns the absolute form of path, or "unknown" when it is empty.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}

// ConfigDir returns the platform config directory for mnemo.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return configDirFor(runtime.GOOS, homeDir, os.Getenv), nil
}

func configDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppName)
	case "linux":
		if configHome := getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}
