package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"proxyrank/internal/logger"
	"proxyrank/pkg/checker"
)

type Config struct {
	Checker  CheckerConfig  `mapstructure:"checker" validate:"required"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Geo      GeoConfig      `mapstructure:"geo"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

type CheckerConfig struct {
	ProxyType   string        `mapstructure:"proxy_type" validate:"omitempty,proxy_type"`
	TargetURL   string        `mapstructure:"target_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"required,min=100ms,max=2m"`
	Concurrency int           `mapstructure:"concurrency" validate:"required,min=1,max=1000"`
	UserAgent   string        `mapstructure:"user_agent" validate:"required,min=10"`
}

type InputConfig struct {
	File string `mapstructure:"file"`
	URL  string `mapstructure:"url" validate:"omitempty,url"`
}

type OutputConfig struct {
	Path     string `mapstructure:"path" validate:"required"`
	Variable string `mapstructure:"variable" validate:"required,env_name"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type GeoConfig struct {
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// setDefaults configures default values for viper
func setDefaults(v *viper.Viper) {
	// Checker defaults
	v.SetDefault("checker.proxy_type", "")
	v.SetDefault("checker.target_url", checker.DefaultTestURL)
	v.SetDefault("checker.timeout", checker.DefaultTimeout.String())
	v.SetDefault("checker.concurrency", checker.DefaultConcurrency)
	v.SetDefault("checker.user_agent", checker.DefaultUserAgent)

	// Input defaults
	v.SetDefault("input.file", "")
	v.SetDefault("input.url", "")

	// Output defaults
	v.SetDefault("output.path", "good_proxies.json")
	v.SetDefault("output.variable", "FACEBOOK_PROXIES")

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.path", "./data/proxyrank.db")

	v.SetDefault("metrics.textfile", "")
	v.SetDefault("geo.database", "")
	v.SetDefault("log.level", "info")
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"type":         "checker.proxy_type",
	"target":       "checker.target_url",
	"timeout":      "checker.timeout",
	"concurrency":  "checker.concurrency",
	"input":        "input.file",
	"url":          "input.url",
	"output":       "output.path",
	"name":         "output.variable",
	"history":      "database.enabled",
	"db":           "database.path",
	"metrics-file": "metrics.textfile",
	"geoip-db":     "geo.database",
	"log-level":    "log.level",
}

// LoadConfig loads configuration from defaults, an optional config file, a
// .env file, PROXYRANK_* environment variables and flags, in increasing
// order of precedence, and validates the result.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	log := logger.New("config")
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/proxyrank")

	v.SetEnvPrefix("PROXYRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// .env entries become PROXYRANK_* variables; real environment wins.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn("failed to load .env file", "err", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults and environment variables")
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks struct tags and the custom rules below.
func Validate(config *Config) error {
	validate := validator.New()

	if err := registerCustomValidators(validate); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// registerCustomValidators adds custom validation rules
func registerCustomValidators(validate *validator.Validate) error {
	if err := validate.RegisterValidation("proxy_type", func(fl validator.FieldLevel) bool {
		_, err := checker.ParseProxyType(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	// Shell variable names: a letter or underscore followed by letters,
	// digits or underscores.
	return validate.RegisterValidation("env_name", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if name == "" {
			return false
		}
		for i, r := range name {
			switch {
			case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9' && i > 0:
			default:
				return false
			}
		}
		return true
	})
}

// SaveConfigTemplate generates a sample configuration file
func SaveConfigTemplate(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}

	return nil
}

// PrintConfig logs the effective configuration.
func PrintConfig(config *Config) {
	log := logger.New("config")
	proxyType := config.Checker.ProxyType
	if proxyType == "" {
		proxyType = "[PROMPT]"
	}
	log.Info("configuration loaded",
		"proxy_type", proxyType,
		"target", config.Checker.TargetURL,
		"timeout", config.Checker.Timeout,
		"concurrency", config.Checker.Concurrency,
	)
	log.Info("output", "path", config.Output.Path, "variable", config.Output.Variable)
	if config.Database.Enabled {
		log.Info("run history enabled", "path", config.Database.Path)
	}
	if config.Metrics.Textfile != "" {
		log.Info("metrics textfile enabled", "path", config.Metrics.Textfile)
	}
	if config.Geo.Database != "" {
		log.Info("geoip lookup enabled", "path", config.Geo.Database)
	}
}
