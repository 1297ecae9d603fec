package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	QR       QRConfig       `mapstructure:"qr"`
	School   SchoolConfig   `mapstructure:"school"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig holds the optional snapshot-cache settings.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// QRConfig holds the token codec settings. The key is base64 and mandatory.
// Nonce is the static fourth component stamped into every issued QR.
type QRConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
	Nonce         string `mapstructure:"nonce"`
}

// SchoolConfig holds the civil timezone the whole service operates in.
type SchoolConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
// Precedence: environment variables > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "control_actividades")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/Mexico_City")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 1)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_ttl", "30s")

	v.SetDefault("qr.nonce", "v1")

	v.SetDefault("school.timezone", "America/Mexico_City")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("CA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows; the key has no
	// default on purpose, so bind it for env-only deployments.
	_ = v.BindEnv("qr.encryption_key")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("leer archivo de configuración: %w", err)
		}
		// no config file: run on defaults plus environment
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("interpretar configuración: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
// A missing or short QR encryption key is a fatal startup condition.
func (c *Config) Validate() error {
	if c.QR.EncryptionKey == "" {
		return fmt.Errorf("configuración inválida: qr.encryption_key no puede estar vacía")
	}
	key, err := base64.StdEncoding.DecodeString(c.QR.EncryptionKey)
	if err != nil {
		return fmt.Errorf("configuración inválida: qr.encryption_key no es base64: %w", err)
	}
	if len(key) < 16 {
		return fmt.Errorf("configuración inválida: qr.encryption_key debe tener al menos 16 bytes")
	}
	if c.School.Timezone == "" {
		return fmt.Errorf("configuración inválida: school.timezone no puede estar vacía")
	}
	if _, err := time.LoadLocation(c.School.Timezone); err != nil {
		return fmt.Errorf("configuración inválida: school.timezone %q: %w", c.School.Timezone, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("configuración inválida: server.port debe estar entre 1 y 65535")
	}
	if c.Database.MaxOpenConns < 1 || c.Database.MaxOpenConns > 10 {
		return fmt.Errorf("configuración inválida: db.max_open_conns debe estar entre 1 y 10")
	}
	return nil
}
