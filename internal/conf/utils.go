// conf/utils.go filesystem helpers for configuration and data paths.
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/sitewarden/sitewarden/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns the OS specific default configuration paths.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "sitewarden"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "sitewarden"),
			"/etc/sitewarden",
		}
	}

	// Check if config.yaml exists in any of the paths
	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}

// GetBasePath expands environment variables in the given path and ensures the
// resulting directory exists, creating it when missing.
func GetBasePath(path string) string {
	basePath := os.ExpandEnv(path)

	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return path
		}
	}

	return basePath
}

// BundlesRoot resolves the offline bundle root directory from settings,
// creating it when missing.
func (s *Settings) BundlesRoot() string {
	return GetBasePath(s.Offline.Path)
}
