// Package config loads service configuration from an optional YAML file and
// IVR_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	ListenAddr string       `yaml:"listen_addr" mapstructure:"listen_addr"`
	PublicURL  string       `yaml:"public_url" mapstructure:"public_url"`
	DBPath     string       `yaml:"db_path" mapstructure:"db_path"`
	Twilio     TwilioConfig `yaml:"twilio" mapstructure:"twilio"`
}

// TwilioConfig holds telephony provider credentials.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" mapstructure:"account_sid"`
	AuthToken  string `yaml:"auth_token" mapstructure:"auth_token"`
	FromNumber string `yaml:"from_number" mapstructure:"from_number"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		DBPath:     "data/transactions.db",
	}
}

// Load reads configuration from the given file path (optional; pass "" to
// rely on defaults and environment) with IVR_* environment overrides, e.g.
// IVR_PUBLIC_URL and IVR_TWILIO_ACCOUNT_SID.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("public_url", "")
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.from_number", "")

	v.SetEnvPrefix("IVR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// ValidateForDialing checks the settings required before a call can be
// placed. Serving webhooks alone does not need provider credentials.
func (c *Config) ValidateForDialing() error {
	var missing []string
	if c.PublicURL == "" {
		missing = append(missing, "public_url")
	}
	if c.Twilio.AccountSID == "" {
		missing = append(missing, "twilio.account_sid")
	}
	if c.Twilio.AuthToken == "" {
		missing = append(missing, "twilio.auth_token")
	}
	if c.Twilio.FromNumber == "" {
		missing = append(missing, "twilio.from_number")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
