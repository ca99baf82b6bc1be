// config.go: settings struct and functions to load and save the sitewarden configuration.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/sitewarden/sitewarden/internal/errors"
	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// RemoteTables selects the remote table set the accessor targets. The
// original deployment kept an alternate "test" table set; switching between
// the two is a configuration concern, not a source edit.
type RemoteTables struct {
	Headers    string // inspection header table
	Details    string // free-form observation detail rows
	Codes      string // observation code lookup
	Persons    string // person lookup (steward display names)
	ReportView string // denormalized per-inspection report view
	SiteList   string // site list view
}

// RemoteSettings contains connection settings for the remote relational service.
type RemoteSettings struct {
	DSN    string       // MySQL DSN of the remote service
	Tables RemoteTables // target table set
}

// RetentionSettings controls the age-based eviction of offline bundles.
type RetentionSettings struct {
	Debug    bool // true to enable retention debug logging
	KeepDays int  // days an unread bundle is kept before eviction
}

// OfflineSettings contains settings for the per-site offline bundles.
type OfflineSettings struct {
	Path      string            // root directory for downloaded site bundles
	Retention RetentionSettings // bundle retention settings
}

// LogSettings contains application log file settings.
type LogSettings struct {
	Enabled bool   // true to write a log file
	Path    string // path to the log file
}

// Settings is the top-level configuration for the application.
type Settings struct {
	Debug   bool            // true to enable debug output
	Log     LogSettings     // application logging
	Remote  RemoteSettings  // remote relational service
	Offline OfflineSettings // offline bundle storage
}

// Load reads the configuration into a new Settings struct.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with defaults and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file and writes it to the default config path
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// ValidateSettings checks the loaded settings for invalid values.
func ValidateSettings(settings *Settings) error {
	if settings.Offline.Retention.KeepDays <= 0 {
		return errors.Newf("offline.retention.keepdays must be a positive integer, got %d",
			settings.Offline.Retention.KeepDays).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("field", "offline.retention.keepdays").
			Build()
	}
	if settings.Offline.Path == "" {
		return errors.Newf("offline.path must not be empty").
			Component("conf").
			Category(errors.CategoryValidation).
			Context("field", "offline.path").
			Build()
	}
	return nil
}

// SaveRetentionDays persists the auto-delete retention preference.
func SaveRetentionDays(days int) error {
	if days <= 0 {
		return errors.Newf("retention days must be a positive integer, got %d", days).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	viper.Set("offline.retention.keepdays", days)
	if err := viper.WriteConfig(); err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("operation", "save-retention-days").
			Build()
	}
	return nil
}
