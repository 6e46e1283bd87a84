package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/stationmap/pkg/errors"
)

// Environment variables read in addition to the config keys.
const (
	EnvAPIRoot     = "HAKAI_API_ROOT"
	EnvCredentials = "HAKAI_API_CREDENTIALS"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// API access
	APIRoot         string
	Credentials     string
	CredentialsFile string

	// Registry file replacing the embedded organizations
	RegistryFile string

	// Logging configuration
	EnvLogLevel string // LOG_LEVEL, below --log-level and -v/-q
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags and the commands)
//  2. Environment variables
//  3. .env files
//  4. Config file (configFile, or .stationmap.yaml in $HOME or .)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Well-known variables shared with other tools of the API.
	if err := v.BindEnv("api_root", "STATIONMAP_API_ROOT", EnvAPIRoot); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind "+EnvAPIRoot, err)
	}
	if err := v.BindEnv("credentials", "STATIONMAP_CREDENTIALS", EnvCredentials); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind "+EnvCredentials, err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".stationmap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist; the search locations are optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", "failed to read "+configFile, err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		APIRoot:         v.GetString("api_root"),
		Credentials:     v.GetString("credentials"),
		CredentialsFile: v.GetString("credentials_file"),
		RegistryFile:    v.GetString("registry"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Booleans always reflect the flags; strings only replace the loaded value
// when set.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, registry string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if registry != "" {
		c.RegistryFile = registry
	}
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides a variable that is already set, so the real environment wins and
// .env.local, loaded first, wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
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
