package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig

	// Database Configuration
	Database DatabaseConfig

	MongoDB MongoDBConfig

	Auth AuthConfig

	// Notification Configuration
	Notification NotificationConfig

	Feed FeedConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string        `env:"HTTP_PORT" envDefault:"8080"`
	FeedGRPCPort string        `env:"FEED_SERVICE_PORT" envDefault:"7002"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	Environment  string        `env:"APP_ENV" envDefault:"development"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"mysql"` // mysql, postgres, sqlite
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT"`
	Username     string `env:"DB_USER" envDefault:"zentra"`
	Password     string `env:"DB_PASSWORD" envDefault:"zentra"`
	DatabaseName string `env:"DB_NAME" envDefault:"zentra"`
	SSLMode      string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`

	// Overrides the DSN built from the fields above
	RawDSN string `env:"DATABASE_DSN"`
}

type MongoDBConfig struct {
	Host            string `env:"MONGO_HOST" envDefault:"localhost"`
	Port            string `env:"MONGO_PORT" envDefault:"27017"`
	Username        string `env:"MONGO_USERNAME"`
	Password        string `env:"MONGO_PASSWORD"`
	Database        string `env:"MONGO_DATABASE" envDefault:"zentra"`
	PostsCollection string `env:"MONGO_POSTS_COLLECTION" envDefault:"posts"`
}

type AuthConfig struct {
	Mode      string `env:"AUTH_MODE" envDefault:"jwt"` // jwt, header
	JWTSecret string `env:"JWT_SECRET"`
}

// NotificationConfig contains push delivery configuration
type NotificationConfig struct {
	SendTimeout    time.Duration `env:"PUSH_SEND_TIMEOUT" envDefault:"2s"`
	OutboundQueue  int           `env:"PUSH_OUTBOUND_QUEUE" envDefault:"64"`
	PingInterval   time.Duration `env:"PUSH_PING_INTERVAL" envDefault:"30s"`
	SenderCacheTTL time.Duration `env:"SENDER_CACHE_TTL" envDefault:"5m"`
}

type FeedConfig struct {
	DefaultLimit int    `env:"FEED_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int    `env:"FEED_MAX_LIMIT" envDefault:"100"`
	Source       string `env:"FEED_SOURCE" envDefault:"sql"` // sql, mongo
	SeedTimezone string `env:"FEED_SEED_TZ" envDefault:"UTC"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json, console
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	switch cfg.Auth.Mode {
	case "jwt", "header":
	default:
		return fmt.Errorf("unsupported AUTH_MODE %q", cfg.Auth.Mode)
	}
	if cfg.Auth.Mode == "jwt" && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}

	switch cfg.Feed.Source {
	case "sql", "mongo":
	default:
		return fmt.Errorf("unsupported FEED_SOURCE %q", cfg.Feed.Source)
	}
	if cfg.Feed.DefaultLimit <= 0 || cfg.Feed.MaxLimit < cfg.Feed.DefaultLimit {
		return fmt.Errorf("feed limits must satisfy 0 < FEED_DEFAULT_LIMIT <= FEED_MAX_LIMIT")
	}
	if _, err := time.LoadLocation(cfg.Feed.SeedTimezone); err != nil {
		return fmt.Errorf("invalid FEED_SEED_TZ: %w", err)
	}

	if cfg.Notification.SendTimeout <= 0 {
		return fmt.Errorf("PUSH_SEND_TIMEOUT must be positive")
	}
	if cfg.Notification.OutboundQueue <= 0 {
		return fmt.Errorf("PUSH_OUTBOUND_QUEUE must be positive")
	}
	if cfg.Notification.SenderCacheTTL <= 0 {
		return fmt.Errorf("SENDER_CACHE_TTL must be positive")
	}
	return nil
}

// SeedLocation is the zone whose calendar day drives the feed shuffle.
func (cfg *Config) SeedLocation() *time.Location {
	loc, err := time.LoadLocation(cfg.Feed.SeedTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) DSN() string {
	if cfg.Database.RawDSN != "" {
		return cfg.Database.RawDSN
	}

	switch cfg.Database.Driver {
	case "postgres":
		port := cfg.Database.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			port,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.DatabaseName,
			cfg.Database.SSLMode,
		)
	case "sqlite":
		return fmt.Sprintf("file:%s.db?_foreign_keys=on", cfg.Database.DatabaseName)
	}

	port := cfg.Database.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" && cfg.MongoDB.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
			cfg.MongoDB.Database,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.Database)
}
