package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig возвращается, если не удалось прочитать или разобрать файл
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDBHost     = "CLINIC_DB_HOST"
	EnvDBPassword = "CLINIC_DB_PASSWORD"
	EnvJWTSecret  = "CLINIC_JWT_SECRET"
	EnvRedisAddr  = "CLINIC_REDIS_ADDR"
	EnvHTTPPort   = "CLINIC_HTTP_PORT"

	EnvCloudinaryAPIKey    = "CLINIC_CLOUDINARY_API_KEY"
	EnvCloudinaryAPISecret = "CLINIC_CLOUDINARY_API_SECRET"
)

// Хранилища фотографий врачей
const (
	ImagesBackendLocal      = "local"
	ImagesBackendCloudinary = "cloudinary"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Bootstrap  BootstrapConfig  `toml:"bootstrap"`
	Images     ImagesConfig     `toml:"images"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки выдачи JWT
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	Issuer        string `toml:"issuer"`
	BcryptCost    int    `toml:"bcrypt_cost"`
}

// RedisConfig настройки хранилища отозванных токенов
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// RateLimitConfig ограничение частоты запросов на вход
type RateLimitConfig struct {
	LoginPerMinute int      `toml:"login_per_minute"`
	LoginBurst     int      `toml:"login_burst"`
	TrustedProxies []string `toml:"trusted_proxies"` // IP или CIDR; пусто = заголовки X-Forwarded-For игнорируются
}

// SchedulingConfig параметры расписания
type SchedulingConfig struct {
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	Timezone            string `toml:"timezone"`
}

// Location возвращает часовой пояс клиники, по которому считается "сегодня"
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// BootstrapConfig создание администратора по умолчанию при старте
type BootstrapConfig struct {
	CreateDefaultAdmin   bool   `toml:"create_default_admin"`
	DefaultAdminName     string `toml:"default_admin_name"`
	DefaultAdminEmail    string `toml:"default_admin_email"`
	DefaultAdminPassword string `toml:"default_admin_password"`
	DefaultHospitalName  string `toml:"default_hospital_name"`
}

// ImagesConfig хранилище фотографий врачей
type ImagesConfig struct {
	Backend      string `toml:"backend"` // local или cloudinary
	MaxSizeBytes int64  `toml:"max_size_bytes"`

	// local: файлы раздаются самим сервисом по base_url
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`

	CloudName string `toml:"cloud_name"`
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
	Folder    string `toml:"folder"`
}

// Load читает .env (если есть), TOML файл и переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "clinicservice",
		},
		Auth: AuthConfig{
			TokenTTLHours: 12,
			Issuer:        "smc-clinicservice",
			BcryptCost:    10,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "clinic:revoked:",
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: 10,
			LoginBurst:     5,
		},
		Scheduling: SchedulingConfig{
			SlotDurationMinutes: 15,
			Timezone:            "UTC",
		},
		Images: ImagesConfig{
			Backend:      ImagesBackendLocal,
			MaxSizeBytes: 5 << 20,
			Dir:          "static/images/doctors",
			BaseURL:      "/images/doctors",
			Folder:       "clinic/doctors",
		},
	}
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvDBHost)); v != "" {
		c.Database.Host = v
	}
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisAddr)); v != "" {
		c.Redis.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHTTPPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	if v := strings.TrimSpace(os.Getenv(EnvCloudinaryAPIKey)); v != "" {
		c.Images.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCloudinaryAPISecret)); v != "" {
		c.Images.APISecret = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database host, dbname and user are required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		problems = append(problems, "auth.jwt_secret must be at least 32 bytes")
	}
	if c.Auth.TokenTTLHours <= 0 {
		problems = append(problems, "auth.token_ttl_hours must be positive")
	}
	if c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required")
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.LoginBurst <= 0 {
		problems = append(problems, "rate_limit values must be positive")
	}
	if c.Scheduling.SlotDurationMinutes <= 0 {
		problems = append(problems, "scheduling.slot_duration_minutes must be positive")
	}
	if _, err := c.Scheduling.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.timezone: %v", err))
	}
	if c.Bootstrap.CreateDefaultAdmin &&
		(c.Bootstrap.DefaultAdminEmail == "" || c.Bootstrap.DefaultAdminPassword == "") {
		problems = append(problems, "bootstrap requires default_admin_email and default_admin_password")
	}

	switch c.Images.Backend {
	case ImagesBackendLocal:
		if c.Images.Dir == "" || !strings.HasPrefix(c.Images.BaseURL, "/") {
			problems = append(problems, "images.dir is required and images.base_url must start with /")
		}
	case ImagesBackendCloudinary:
		if c.Images.CloudName == "" || c.Images.APIKey == "" || c.Images.APISecret == "" {
			problems = append(problems, "images cloudinary backend requires cloud_name, api_key and api_secret")
		}
	default:
		problems = append(problems, fmt.Sprintf("images.backend %q is not supported", c.Images.Backend))
	}
	if c.Images.MaxSizeBytes <= 0 {
		problems = append(problems, "images.max_size_bytes must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
