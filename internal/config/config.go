package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CLINIC_DATABASE_HOST.
const EnvPrefix = "clinic"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Media     MediaConfig     `mapstructure:"media"`
	Admin     AdminConfig     `mapstructure:"admin"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" split_words:"true"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port                   int      `mapstructure:"port"`
	Mode                   string   `mapstructure:"mode"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" split_words:"true"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" split_words:"true"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" split_words:"true"`
	TrustedProxies         []string `mapstructure:"trusted_proxies" split_words:"true"`
}

type DatabaseConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	Name                   string `mapstructure:"name"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" split_words:"true"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" split_words:"true"`
	AutoMigrate            bool   `mapstructure:"auto_migrate" split_words:"true"`
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type MediaConfig struct {
	Root        string `mapstructure:"root"`
	URL         string `mapstructure:"url"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" split_words:"true"`
}

// AdminConfig holds the admin console settings fixed for the life of the process.
type AdminConfig struct {
	SiteHeader    string `mapstructure:"site_header" split_words:"true"`
	SiteTitle     string `mapstructure:"site_title" split_words:"true"`
	IndexTitle    string `mapstructure:"index_title" split_words:"true"`
	JWTSecret     string `mapstructure:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" envconfig:"TOKEN_TTL_HOURS"`
	CookieSecure  bool   `mapstructure:"cookie_secure" split_words:"true"`
	PerPage       int    `mapstructure:"per_page" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" split_words:"true"`
	Burst             int     `mapstructure:"burst"`
}

type SMTPConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	Username        string   `mapstructure:"username"`
	Password        string   `mapstructure:"password"`
	From            string   `mapstructure:"from"`
	StaffRecipients []string `mapstructure:"staff_recipients" split_words:"true"`
}

// Enabled reports whether staff notification mail can be sent.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && len(c.StaffRecipients) > 0
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 5)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "clinic")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 30)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("media.root", "./media")
	v.SetDefault("media.url", "/media")
	v.SetDefault("media.max_upload_mb", 10)

	v.SetDefault("admin.site_header", "AZFI Aesthetics Administration")
	v.SetDefault("admin.site_title", "AZFI Aesthetics Admin Portal")
	v.SetDefault("admin.index_title", "Welcome to AZFI Aesthetics Admin Portal")
	v.SetDefault("admin.token_ttl_hours", 24)
	v.SetDefault("admin.per_page", 100)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 10)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("redis.channel", "clinic.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// LoadConfig reads an optional .env file, then config.yaml from . or ./config, then
// CLINIC_* environment variables, each layer overriding the previous one.
func LoadConfig(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 {
		problems = append(problems, "server.port must be positive")
	}
	if c.Admin.JWTSecret == "" {
		problems = append(problems, "admin.jwt_secret is required")
	}
	if c.Admin.TokenTTLHours <= 0 {
		problems = append(problems, "admin.token_ttl_hours must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
