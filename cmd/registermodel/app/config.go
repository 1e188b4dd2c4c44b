package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/registermodel/internal/cmd/globals"
	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
)

// Configuration keys. Each key is also read from the upper-cased
// environment variable (registry_backend from REGISTRY_BACKEND).
const (
	keyConfig            = "config"
	keyRegistryBackend   = "registry_backend"
	keyLocalRegistryPath = "local_registry_path"
	keyWorkspaceConfig   = "workspace_config"
	keyARMEndpoint       = "arm_endpoint"
	keyARMAPIVersion     = "arm_api_version"
	keyHTTPTimeout       = "http_timeout"
	keyFormat            = "format"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Registry configuration
	Registry          string
	LocalRegistryPath string
	WorkspaceConfig   string
	ARMEndpoint       string
	ARMAPIVersion     string
	HTTPTimeout       time.Duration

	// Logging configuration. LogLevel is only set by --log-level;
	// EnvLogLevel holds LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.registermodel.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults()

	if err := readConfigFile(viper.GetString(keyConfig)); err != nil {
		return nil, err
	}
	return fromViper(), nil
}

// ReloadConfig reads an explicit config file and rebuilds the
// configuration from it.
func ReloadConfig(path string) (*Config, error) {
	if err := readConfigFile(path); err != nil {
		return nil, err
	}
	return fromViper(), nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and environment variables.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	c.Verbose = flags.Verbose
	c.Quiet = flags.Quiet
	c.NoColor = flags.NoColor
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Registry != "" {
		c.Registry = flags.Registry
	}
	if flags.LocalRegistryPath != "" {
		c.LocalRegistryPath = flags.LocalRegistryPath
	}
	if flags.ConfigFile != "" {
		c.ConfigFile = flags.ConfigFile
	}
}

func setDefaults() {
	viper.SetDefault(keyRegistryBackend, constants.DefaultRegistryBackend)
	viper.SetDefault(keyARMEndpoint, constants.DefaultARMEndpoint)
	viper.SetDefault(keyARMAPIVersion, constants.DefaultARMAPIVersion)
	viper.SetDefault(keyHTTPTimeout, constants.DefaultHTTPTimeout)
	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault(keyLocalRegistryPath, filepath.Join(home, ".registermodel", "registry"))
	}
}

// readConfigFile reads path, or searches the standard locations when path
// is empty. A missing file in the standard locations is not an error.
func readConfigFile(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "failed to read "+path, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName(".registermodel")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.NewConfigError("config", "failed to read config file", err)
	}
	return nil
}

func fromViper() *Config {
	return &Config{
		Format:     viper.GetString(keyFormat),
		ConfigFile: viper.ConfigFileUsed(),

		Registry:          viper.GetString(keyRegistryBackend),
		LocalRegistryPath: viper.GetString(keyLocalRegistryPath),
		WorkspaceConfig:   viper.GetString(keyWorkspaceConfig),
		ARMEndpoint:       viper.GetString(keyARMEndpoint),
		ARMAPIVersion:     viper.GetString(keyARMAPIVersion),
		HTTPTimeout:       viper.GetDuration(keyHTTPTimeout),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded last; godotenv never overrides variables that are
// already set, so the process environment always wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
