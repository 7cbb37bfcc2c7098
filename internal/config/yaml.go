package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Server   ServerConfig   `yaml:"server"`
	Email    EmailConfig    `yaml:"email"`
	Admin    AdminConfig    `yaml:"admin"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Features FeatureConfig  `yaml:"features"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Expiry string `yaml:"expiry"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Host        string   `yaml:"host"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type EmailConfig struct {
	MailerSendAPIKey string `yaml:"mailersend_api_key"`
	ResendAPIKey     string `yaml:"resend_api_key"`
	FromEmail        string `yaml:"from_email"`
	FromName         string `yaml:"from_name"`
	AdminEmail       string `yaml:"admin_email"`
}

// AdminConfig is the fixed portal identity. Logging in with these
// credentials bypasses the users table and yields a super-admin token.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// PricingConfig holds the payment policy values. The booking amount is
// BookingPercent of the per-person share, rounded up; ConvenienceFee is
// charged once, on the final payment leg.
type PricingConfig struct {
	BookingPercent int `yaml:"booking_percent"`
	ConvenienceFee int `yaml:"convenience_fee"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type FeatureConfig struct {
	DisableNotifications bool `yaml:"disable_notifications"`
	EnableOrderRateLimit bool `yaml:"enable_order_rate_limit"`
	MaxOrdersPerHour     int  `yaml:"max_orders_per_hour"`
}

var AppConfig *Config

func LoadConfig() error {
	// Try to find config file in different locations
	configPaths := []string{
		"secret/app.yaml",
		"app.yaml",
		"config/app.yaml",
		"./app.yaml",
	}

	var configPath string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			configPath = path
			break
		}
	}

	if configPath == "" {
		return fmt.Errorf("config file not found in any of the expected locations: %v", configPaths)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", configPath, err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %v", err)
	}

	setDefaults(config)

	AppConfig = config
	return nil
}

func setDefaults(config *Config) {
	// Database defaults
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.User == "" {
		config.Database.User = "splitup_user"
	}
	if config.Database.Password == "" {
		config.Database.Password = "splitup_password"
	}
	if config.Database.Name == "" {
		config.Database.Name = "splitup_db"
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}

	// JWT defaults
	if config.JWT.Secret == "" {
		config.JWT.Secret = "splitup-super-secret-jwt-key-change-in-production"
	}
	if config.JWT.Expiry == "" {
		config.JWT.Expiry = "24h"
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if len(config.Server.CORSOrigins) == 0 {
		config.Server.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Email defaults
	if config.Email.FromEmail == "" {
		config.Email.FromEmail = "noreply@splitup.in"
	}
	if config.Email.FromName == "" {
		config.Email.FromName = "SplitUp Team"
	}
	if config.Email.AdminEmail == "" {
		config.Email.AdminEmail = "admin@splitup.in"
	}

	// Admin portal defaults
	if config.Admin.Email == "" {
		config.Admin.Email = "admin@splitup.in"
	}
	if config.Admin.Password == "" {
		config.Admin.Password = "change-me"
	}

	// Pricing defaults: 10% booking, flat convenience fee on the final leg
	if config.Pricing.BookingPercent == 0 {
		config.Pricing.BookingPercent = 10
	}
	if config.Pricing.ConvenienceFee == 0 {
		config.Pricing.ConvenienceFee = 49
	}

	if config.Catalog.Path == "" {
		config.Catalog.Path = "config/plans.yaml"
	}

	// Feature defaults
	if config.Features.MaxOrdersPerHour == 0 {
		config.Features.MaxOrdersPerHour = 10
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		// Try to load config if not already loaded
		if err := LoadConfig(); err != nil {
			// If loading fails, create a default config
			config := &Config{}
			setDefaults(config)
			AppConfig = config
		}
	}
	return AppConfig
}
