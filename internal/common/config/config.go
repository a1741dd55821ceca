// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Session    SessionConfig    `mapstructure:"session"`
	Rewards    RewardsConfig    `mapstructure:"rewards"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver selects the persistence backend: "postgres" or "memory".
	// The memory backend is for local development only.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig holds settings for the server-side session store.
type SessionConfig struct {
	TTL        int    `mapstructure:"ttl"` // minutes
	CookieName string `mapstructure:"cookie_name"`
}

// RewardsConfig holds the fixed coin amounts credited by the wallet.
type RewardsConfig struct {
	FeedbackCoins int `mapstructure:"feedback_coins"`
	WelcomeBonus  int `mapstructure:"welcome_bonus"`
}

// ScoringConfig selects the match scoring strategy.
type ScoringConfig struct {
	Strategy string `mapstructure:"strategy"` // "keyword" or "random"
}

// ExtractionConfig bounds the observe-and-rescan loop applied to live pages.
type ExtractionConfig struct {
	ObserveDelay int `mapstructure:"observe_delay"` // milliseconds between rescans
	MaxAttempts  int `mapstructure:"max_attempts"`
	FetchTimeout int `mapstructure:"fetch_timeout"` // milliseconds per fetch
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
