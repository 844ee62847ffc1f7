package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Resume      ResumeConfig
	Application ApplicationConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Tracing     bool
}

type ServerConfig struct {
	Port    string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn time.Duration
}

type ResumeConfig struct {
	Dir             string
	MaxBytes        int64
	SniffContent    bool
	ServeStoredType bool
}

type ApplicationConfig struct {
	StrictTransitions bool
	VerifyReferences  bool
	RejectDuplicates  bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_TIMEOUT", "30s")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("RESUME_DIR", "uploads")
	v.SetDefault("RESUME_MAX_BYTES", 5<<20)
	v.SetDefault("RESUME_SNIFF_CONTENT", true)
	v.SetDefault("RESUME_SERVE_STORED_TYPE", false)
	v.SetDefault("APPLICATION_STRICT_TRANSITIONS", false)
	v.SetDefault("APPLICATION_VERIFY_REFERENCES", false)
	v.SetDefault("APPLICATION_REJECT_DUPLICATES", false)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TRACING_ENABLED", true)
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(".env dosyası yüklenemedi: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	cfg.AppEnv = v.GetString("APP_ENV")
	cfg.LogLevel = v.GetString("LOG_LEVEL")
	cfg.Tracing = v.GetBool("TRACING_ENABLED")

	cfg.Server.Port = v.GetString("SERVER_PORT")
	cfg.Server.Timeout = v.GetDuration("SERVER_TIMEOUT")

	cfg.Database.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.Database.URL = v.GetString("DATABASE_URL")
	cfg.Database.Host = v.GetString("DB_HOST")
	cfg.Database.Port = v.GetString("DB_PORT")
	cfg.Database.User = v.GetString("DB_USER")
	cfg.Database.Password = v.GetString("DB_PASSWORD")
	cfg.Database.Name = v.GetString("DB_NAME")
	cfg.Database.SSLMode = v.GetString("DB_SSL_MODE")

	cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	cfg.Auth.JWTExpiresIn = v.GetDuration("JWT_EXPIRES_IN")

	cfg.Resume.Dir = v.GetString("RESUME_DIR")
	cfg.Resume.MaxBytes = v.GetInt64("RESUME_MAX_BYTES")
	cfg.Resume.SniffContent = v.GetBool("RESUME_SNIFF_CONTENT")
	cfg.Resume.ServeStoredType = v.GetBool("RESUME_SERVE_STORED_TYPE")

	cfg.Application.StrictTransitions = v.GetBool("APPLICATION_STRICT_TRANSITIONS")
	cfg.Application.VerifyReferences = v.GetBool("APPLICATION_VERIFY_REFERENCES")
	cfg.Application.RejectDuplicates = v.GetBool("APPLICATION_REJECT_DUPLICATES")

	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetString("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET tanımlanmalı")
	}
	if c.Auth.JWTExpiresIn <= 0 {
		return fmt.Errorf("geçersiz JWT_EXPIRES_IN: %s", c.Auth.JWTExpiresIn)
	}
	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Database.URL == "" {
			return errors.New("sqlite3 sürücüsü için DATABASE_URL tanımlanmalı")
		}
	default:
		return fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %s", c.Database.Driver)
	}
	if c.Resume.MaxBytes <= 0 {
		return fmt.Errorf("geçersiz RESUME_MAX_BYTES: %d", c.Resume.MaxBytes)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
