package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/repurpose/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Release location
	DataDir     string
	Manifest    string
	RatingsFile string
	ItemsFile   string
	UsersFile   string
	UseSample   bool

	// Logging configuration. LogLevel is only set by --log-level;
	// EnvLogLevel comes from LOG_LEVEL or the config file.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .repurpose.yaml in $HOME or .)
// 5. Defaults
//
// A missing default config file is ignored; an explicit one must exist.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("data_dir", ".")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".repurpose")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:     v.GetString("data_dir"),
		Manifest:    v.GetString("manifest"),
		RatingsFile: v.GetString("ratings_file"),
		ItemsFile:   v.GetString("items_file"),
		UsersFile:   v.GetString("users_file"),
		UseSample:   v.GetBool("use_sample"),

		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}, nil
}

// Flags holds the values of the global command-line flags.
type Flags struct {
	ConfigFile string
	DataDir    string
	Sample     bool
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
}

// UpdateFromFlags copies the flags the user actually set onto the config,
// so that flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(f *Flags, changed func(name string) bool) {
	if changed("data-dir") {
		c.DataDir = f.DataDir
		c.UseSample = false
	}
	if changed("sample") {
		c.UseSample = f.Sample
	}
	if changed("verbose") {
		c.Verbose = f.Verbose
	}
	if changed("quiet") {
		c.Quiet = f.Quiet
	}
	if changed("no-color") {
		c.NoColor = f.NoColor
	}
	if changed("format") {
		c.Output = f.Format
	}
	if changed("log-level") {
		c.LogLevel = f.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
