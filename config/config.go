package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is assembled once at startup
// and passed by reference into the services that need it.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	AllowedOrigins    []string
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Google Calendar service account.
	GoogleProjectID    string `mapstructure:"GOOGLE_PROJECT_ID"`
	GooglePrivateKeyID string `mapstructure:"GOOGLE_PRIVATE_KEY_ID"`
	GooglePrivateKey   string `mapstructure:"GOOGLE_PRIVATE_KEY"`
	GoogleClientEmail  string `mapstructure:"GOOGLE_CLIENT_EMAIL"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleCertURL      string `mapstructure:"GOOGLE_CLIENT_CERT_URL"`
	GoogleCalendarID   string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// WhatsApp Business (Meta Graph API).
	WhatsAppPhoneNumberID string `mapstructure:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppAccessToken   string `mapstructure:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppAPIBaseURL    string `mapstructure:"WHATSAPP_API_BASE_URL"`
}

// MissingKeysError reports configuration keys that a component requires
// but that were absent at call time. Component names the provider
// integration that is unusable without them.
type MissingKeysError struct {
	Component string
	Keys      []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("%s: missing configuration keys: %s", e.Component, strings.Join(e.Keys, ", "))
}

// Load reads configuration from an optional config file plus the
// environment and returns the assembled Config.
func Load() (*Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:8080,http://localhost:3000")
	viper.SetDefault("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v18.0")

	// Credentials default to empty; registering them makes the matching
	// environment variables visible to Unmarshal.
	for _, key := range []string{
		"GOOGLE_PROJECT_ID", "GOOGLE_PRIVATE_KEY_ID", "GOOGLE_PRIVATE_KEY",
		"GOOGLE_CLIENT_EMAIL", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_CERT_URL",
		"GOOGLE_CALENDAR_ID", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_ACCESS_TOKEN",
	} {
		viper.SetDefault(key, "")
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Deployment platforms escape newlines in the private key.
	cfg.GooglePrivateKey = strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n")

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
