package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all configuration for the closet service
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Wardrobe WardrobeConfig `mapstructure:"wardrobe"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AuthConfig holds bearer token verification settings. An empty JWTSecret
// disables authentication and every request acts as DefaultUser.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	DefaultUser string `mapstructure:"default_user"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// WardrobeConfig holds listing behaviour
type WardrobeConfig struct {
	// Locale is the BCP 47 tag used to collate item names.
	Locale string `mapstructure:"locale"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables, e.g. CLOSET_SERVER_PORT
	v.SetEnvPrefix("CLOSET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.default_user", "local")

	v.SetDefault("database.path", "./data/closet.db")

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("wardrobe.locale", "en")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetDefault("metrics.enabled", true)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.DefaultUser == "" {
		return errors.New("auth.default_user is required when auth.jwt_secret is empty")
	}
	if _, err := language.Parse(c.Wardrobe.Locale); err != nil {
		return fmt.Errorf("invalid wardrobe.locale %q: %w", c.Wardrobe.Locale, err)
	}
	return nil
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Locale returns the parsed collation locale, English when unset or invalid.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Wardrobe.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
