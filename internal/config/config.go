package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the update pipeline settings.
type Config struct {
	// AppName is the application's registration key name in the host
	// configuration store (the Uninstall subtree).
	AppName string `yaml:"app_name"`
	// ProcessName is the executable name of the running application,
	// used when close_running is enabled.
	ProcessName string `yaml:"process_name"`
	// ReleaseOwner is the owner part of the release registry slug.
	ReleaseOwner string `yaml:"release_owner"`
	// ReleaseRepo is the repository part of the release registry slug.
	ReleaseRepo string `yaml:"release_repo"`
	// APIBaseURL is the release registry endpoint base.
	APIBaseURL string `yaml:"api_base_url"`
	// DownloadDir is where installer artifacts are written. Empty
	// means the system temporary directory.
	DownloadDir string `yaml:"download_dir"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
	// Timeout bounds each network operation.
	Timeout time.Duration `yaml:"timeout"`
	// CloseRunning terminates running application processes before the
	// installer is spawned.
	CloseRunning bool `yaml:"close_running"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "npp-updater-settings.yaml"

	// DefaultAppName is the registration key of the target application.
	DefaultAppName = "Notepad++"

	// DefaultProcessName is the target application's executable name.
	DefaultProcessName = "notepad++.exe"

	// DefaultReleaseOwner and DefaultReleaseRepo form the release
	// registry slug of the target application.
	DefaultReleaseOwner = "notepad-plus-plus"
	DefaultReleaseRepo  = "notepad-plus-plus"

	// DefaultAPIBaseURL is the release registry endpoint.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 10 * time.Second

	// DefaultFilePermissions is the file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAppNameRequired is returned when the application name is missing.
	errAppNameRequired = errors.New("application name must be provided")
	// errSlugRequired is returned when the release registry slug is incomplete.
	errSlugRequired = errors.New("release owner and repository must be provided")
)

// Default returns the built-in Notepad++ settings.
func Default() *Config {
	return &Config{
		AppName:      DefaultAppName,
		ProcessName:  DefaultProcessName,
		ReleaseOwner: DefaultReleaseOwner,
		ReleaseRepo:  DefaultReleaseRepo,
		APIBaseURL:   DefaultAPIBaseURL,
		LogLevel:     "info",
		Timeout:      DefaultTimeout,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path is not an error: the tool runs
// with the built-in defaults so no configuration step is required.
func Load(path string) (*Config, error) {
	usingDefaultPath := path == ""
	if usingDefaultPath {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.AppName == "" {
		return errAppNameRequired
	}

	if cfg.ReleaseOwner == "" || cfg.ReleaseRepo == "" {
		return errSlugRequired
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.ProcessName == "" {
		cfg.ProcessName = DefaultProcessName
	}

	return nil
}
