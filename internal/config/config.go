package config

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
type Config struct {
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds  int    `mapstructure:"API_TIMEOUT_SECONDS"`
	GatewayCheckoutURL string `mapstructure:"GATEWAY_CHECKOUT_URL"`
	GatewayOrigin      string `mapstructure:"GATEWAY_ORIGIN"`
	CallbackPort       int    `mapstructure:"CALLBACK_PORT"`
	SessionFile        string `mapstructure:"SESSION_FILE"`
	SessionKeyBase64   string `mapstructure:"SESSION_KEY"`
	LogMode            string `mapstructure:"LOG_MODE"`
}

// LoadConfig loads configuration from a local .env file (when present) and
// the environment, using Viper.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; the environment alone may be complete.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("CALLBACK_PORT", 43117)
	viper.SetDefault("SESSION_FILE", ".jobtrack/session.json")
	viper.SetDefault("LOG_MODE", "debug")

	// Bind environment variables
	viper.BindEnv("API_BASE_URL")
	viper.BindEnv("API_TIMEOUT_SECONDS")
	viper.BindEnv("GATEWAY_CHECKOUT_URL")
	viper.BindEnv("GATEWAY_ORIGIN")
	viper.BindEnv("CALLBACK_PORT")
	viper.BindEnv("SESSION_FILE")
	viper.BindEnv("SESSION_KEY")
	viper.BindEnv("LOG_MODE")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if cfg.GatewayCheckoutURL == "" {
		return nil, errors.New("GATEWAY_CHECKOUT_URL is required")
	}
	if cfg.SessionKeyBase64 != "" {
		if _, err := cfg.SessionKey(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// SessionKey decodes the optional at-rest encryption key. Returns nil when
// no key is configured.
func (c *Config) SessionKey() ([]byte, error) {
	if c.SessionKeyBase64 == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.SessionKeyBase64)
	if err != nil {
		return nil, errors.New("SESSION_KEY must be valid base64: " + err.Error())
	}
	if len(key) != 32 {
		return nil, errors.New("SESSION_KEY must decode to 32 bytes for AES-256")
	}
	return key, nil
}
