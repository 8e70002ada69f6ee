package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		DBName          string `yaml:"dbname"`
		SSLMode         string `yaml:"sslmode"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret"`
		AccessTokenExpiration string `yaml:"access_token_expiration"`
		Issuer                string `yaml:"issuer"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "courseloop"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "courseloop.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	overrideString(&config.Server.Port, "SERVER_PORT")
	overrideString(&config.Server.Mode, "SERVER_MODE")

	overrideString(&config.Database.Host, "DB_HOST")
	overrideString(&config.Database.Port, "DB_PORT")
	overrideString(&config.Database.User, "DB_USER")
	overrideString(&config.Database.Password, "DB_PASSWORD")
	overrideString(&config.Database.DBName, "DB_NAME")
	overrideString(&config.Database.SSLMode, "DB_SSLMODE")
	overrideInt(&config.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	overrideInt(&config.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	overrideString(&config.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")

	overrideString(&config.JWT.Secret, "JWT_SECRET")
	overrideString(&config.JWT.AccessTokenExpiration, "JWT_ACCESS_TOKEN_EXPIRATION")
	overrideString(&config.JWT.Issuer, "JWT_ISSUER")

	overrideString(&config.Logging.Level, "LOG_LEVEL")
	overrideString(&config.Logging.Format, "LOG_FORMAT")
}

func overrideString(target *string, envKey string) {
	if value := os.Getenv(envKey); value != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value := os.Getenv(envKey); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret must be set")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration: %w", err)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection max lifetime: %w", err)
	}
	return nil
}

// GetPostgresConnectionString builds the pgx connection string.
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.DBName, c.Database.SSLMode,
	)
}

// AccessTokenExp returns the parsed access token lifetime.
func (c *Config) AccessTokenExp() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return time.Hour
	}
	return d
}
