// Package config загрузка конфигурации сервиса из TOML-файла.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/rameshwari28/QuickCourt/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	VenueService VenueServiceConfig `toml:"venue_service"`
	Booking      BookingConfig      `toml:"booking"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки кэша доступности
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// VenueServiceConfig настройки клиента каталога площадок и кортов
type VenueServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig политика бронирования
// Гранулярность слотов едина для всего сервиса: длительность бронирования
// всегда кратна ей
type BookingConfig struct {
	GranularityMinutes      int `toml:"granularity_minutes"`
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int `toml:"advance_booking_days"` // 0 = без ограничения
	MaxDurationMinutes      int `toml:"max_duration_minutes"`
	CreateTimeoutSeconds    int `toml:"create_timeout_seconds"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML-файла и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.GranularityMinutes == 0 {
		c.Booking.GranularityMinutes = domain.DefaultGranularityMinutes
	}
	if c.Booking.MaxDurationMinutes == 0 {
		c.Booking.MaxDurationMinutes = domain.DefaultMaxDurationMinutes
	}
	if c.Booking.CreateTimeoutSeconds == 0 {
		c.Booking.CreateTimeoutSeconds = 5
	}
	if c.Redis.CacheTTLSeconds == 0 {
		c.Redis.CacheTTLSeconds = 30
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Booking.GranularityMinutes < domain.MinGranularityMinutes ||
		c.Booking.GranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("config: booking.granularity_minutes must be in [%d, %d]",
			domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}
	if c.Booking.MaxDurationMinutes%c.Booking.GranularityMinutes != 0 {
		return fmt.Errorf("config: booking.max_duration_minutes must be a multiple of granularity")
	}
	return nil
}
