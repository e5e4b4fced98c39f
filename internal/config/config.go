package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Timezone   string               `toml:"timezone"`
	Server     ServerConfig         `toml:"server"`
	Database   DatabaseConfig       `toml:"database"`
	Logs       LogsConfig           `toml:"logs"`
	Metrics    MetricsConfig        `toml:"metrics"`
	Schedule   map[string]DayConfig `toml:"schedule"`
	RateLimits RateLimitsConfig     `toml:"rate_limits"`
	Hub        HubConfig            `toml:"hub"`
	Mailer     MailerConfig         `toml:"mailer"`
	Auth       AuthConfig           `toml:"auth"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DayConfig расписание одного дня недели; пустые значения = выходной
type DayConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// RateLimitConfig параметры одного именованного limiter-а
type RateLimitConfig struct {
	Limit         int `toml:"limit"`
	WindowSeconds int `toml:"window_seconds"`
}

// Window возвращает окно как time.Duration
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// RateLimitsConfig настройки всех limiter-ов.
// RedisAddr непустой = счетчики в Redis (для нескольких инстансов).
type RateLimitsConfig struct {
	Capacity  int             `toml:"capacity"`
	RedisAddr string          `toml:"redis_addr"`
	Booking   RateLimitConfig `toml:"booking"`
	Auth      RateLimitConfig `toml:"auth"`
	Cancel    RateLimitConfig `toml:"cancel"`
	API       RateLimitConfig `toml:"api"`
}

// HubConfig настройки realtime-хаба
type HubConfig struct {
	BroadcastURL   string `toml:"broadcast_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	HTTPPort       int    `toml:"http_port"`
}

// AuthConfig учетные данные администратора
type AuthConfig struct {
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
}

// MailerConfig настройки почтовых уведомлений (Resend)
type MailerConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	BaseURL string `toml:"base_url"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load загружает конфигурацию из toml-файла и проставляет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if _, err := cfg.WeekSchedule(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location возвращает часовой пояс салона. Дата и время записей
// хранятся как локальные значения этого пояса.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking-service"
	}
	if c.Hub.TimeoutSeconds == 0 {
		c.Hub.TimeoutSeconds = 3
	}
	if c.Hub.HTTPPort == 0 {
		c.Hub.HTTPPort = 8090
	}

	// Лимиты из исходного продукта: booking 5/15м, auth 5/15м,
	// cancel 10/15м, api 60/1м
	if c.RateLimits.Booking.Limit == 0 {
		c.RateLimits.Booking = RateLimitConfig{Limit: 5, WindowSeconds: 900}
	}
	if c.RateLimits.Auth.Limit == 0 {
		c.RateLimits.Auth = RateLimitConfig{Limit: 5, WindowSeconds: 900}
	}
	if c.RateLimits.Cancel.Limit == 0 {
		c.RateLimits.Cancel = RateLimitConfig{Limit: 10, WindowSeconds: 900}
	}
	if c.RateLimits.API.Limit == 0 {
		c.RateLimits.API = RateLimitConfig{Limit: 60, WindowSeconds: 60}
	}
}

// WeekSchedule строит доменное расписание из конфигурации.
// Пустая секция [schedule] = стандартные часы салона.
func (c *Config) WeekSchedule() (domain.WeekSchedule, error) {
	if len(c.Schedule) == 0 {
		return domain.DefaultWeekSchedule(), nil
	}

	schedule := make(domain.WeekSchedule, len(c.Schedule))
	for name, day := range c.Schedule {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("config: unknown weekday %q in [schedule]", name)
		}
		if day.Open == "" && day.Close == "" {
			continue // выходной
		}

		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return nil, fmt.Errorf("config: schedule.%s.open: %w", name, err)
		}
		close, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return nil, fmt.Errorf("config: schedule.%s.close: %w", name, err)
		}
		if !open.IsBefore(close) {
			return nil, fmt.Errorf("config: schedule.%s: open must precede close", name)
		}

		schedule[weekday] = domain.DayWindow{
			OpenMinutes:  open.Minutes(),
			CloseMinutes: close.Minutes(),
		}
	}
	return schedule, nil
}
