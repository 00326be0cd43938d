package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"SERVER_PORT"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
		AssetsPath  string   `yaml:"assets_path" env:"SERVER_ASSETS_PATH"`
		// RevocationPurgeInterval is how often expired logout records are deleted
		RevocationPurgeInterval string `yaml:"revocation_purge_interval" env:"SERVER_REVOCATION_PURGE_INTERVAL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		TxTimeout       string `yaml:"tx_timeout" env:"DB_TX_TIMEOUT"`
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Cookie struct {
		Name     string `yaml:"name" env:"COOKIE_NAME"`
		Domain   string `yaml:"domain" env:"COOKIE_DOMAIN"`
		Secure   bool   `yaml:"secure" env:"COOKIE_SECURE"`
		SameSite string `yaml:"same_site" env:"COOKIE_SAME_SITE"`
	} `yaml:"cookie"`

	Academic struct {
		CurrentTerm   string   `yaml:"current_term" env:"ACADEMIC_CURRENT_TERM"`
		TermOrder     []string `yaml:"term_order" env:"ACADEMIC_TERM_ORDER"`
		Institution   string   `yaml:"institution" env:"ACADEMIC_INSTITUTION"`
		RegistrarName string   `yaml:"registrar_name" env:"ACADEMIC_REGISTRAR_NAME"`
	} `yaml:"academic"`

	Transcript struct {
		SignatureImage string `yaml:"signature_image" env:"TRANSCRIPT_SIGNATURE_IMAGE"`
		Disclaimer     string `yaml:"disclaimer" env:"TRANSCRIPT_DISCLAIMER"`
	} `yaml:"transcript"`

	Security struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"SECURITY_BCRYPT_COST"`
	} `yaml:"security"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file, an optional .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults and environment only
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"http://localhost:3000"}
	config.Server.AssetsPath = "assets"
	config.Server.RevocationPurgeInterval = "1h"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "registrar"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxTimeout = "30s"
	config.Database.MigrationsPath = "migrations"
	config.Database.Seed = true

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "registrar.app"

	config.Cookie.Name = "token"
	config.Cookie.SameSite = "lax"

	config.Academic.CurrentTerm = "1st"
	config.Academic.TermOrder = []string{"1st", "2nd"}
	config.Academic.Institution = "University"

	config.Transcript.Disclaimer = "This transcript was generated electronically and is valid without a physical signature only when verified with the Registry."

	config.Security.BcryptCost = 12

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if strings.TrimSpace(config.Academic.CurrentTerm) == "" {
		return fmt.Errorf("academic current term is required")
	}

	if config.Cookie.Name == "" {
		return fmt.Errorf("cookie name is required")
	}

	durations := map[string]string{
		"JWT access token expiration": config.JWT.AccessTokenExpiration,
		"database conn max lifetime":  config.Database.ConnMaxLifetime,
		"database tx timeout":         config.Database.TxTimeout,
		"revocation purge interval":   config.Server.RevocationPurgeInterval,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch strings.ToLower(config.Cookie.SameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("cookie same_site must be one of lax, strict, none")
	}

	return nil
}

// AccessTokenTTL returns the parsed access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// ConnMaxLifetime returns the parsed pool connection lifetime.
func (c *Config) ConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

// TxTimeout returns the parsed transaction timeout.
func (c *Config) TxTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Database.TxTimeout)
	return d
}

// RevocationPurgeInterval returns how often expired token revocations are purged.
func (c *Config) RevocationPurgeInterval() time.Duration {
	d, _ := time.ParseDuration(c.Server.RevocationPurgeInterval)
	return d
}

// CookieSameSite returns the configured SameSite mode for the auth cookie.
func (c *Config) CookieSameSite() http.SameSite {
	switch strings.ToLower(c.Cookie.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
