package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 1780
	defaultShutdownTimeout = 10
	defaultSelector        = ".leaderboard tbody"
	defaultTitle           = "High Scores"
	defaultCacheTTL        = 60
	defaultRedisAddr       = "localhost:6379"
	defaultRedisKey        = "leaderboard:rows"
	defaultMetricsAddr     = ":9090"
	defaultLogLevel        = "info"
	defaultMaxPerSecond    = 10
	defaultMaxPerMinute    = 300
	defaultBanDuration     = 60
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Page     PageConfig     `yaml:"page"`
	Redis    RedisConfig    `yaml:"redis"`
	Security SecurityConfig `yaml:"security"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host            string `yaml:"host" env:"SERVER_HOST"`
	Port            int    `yaml:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" validate:"min=0"` // 秒
	TrustProxy      bool   `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY"`                            // 信任 X-Forwarded-For / X-Real-IP
}

// PageConfig 排行榜页面配置
type PageConfig struct {
	Selector string `yaml:"selector" env:"PAGE_SELECTOR" validate:"required"`
	Title    string `yaml:"title" env:"PAGE_TITLE"`
	CacheTTL int    `yaml:"cache_ttl" env:"PAGE_CACHE_TTL" validate:"min=0"` // 秒，0 表示不缓存
}

// RedisConfig Redis 镜像配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" validate:"required_if=Enabled true"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" validate:"min=0"`
	Key      string `yaml:"key" env:"REDIS_KEY" validate:"required_if=Enabled true"`
}

// SecurityConfig WebSocket 安全配置
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" env:"SECURITY_ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second" env:"RATE_LIMIT_MAX_PER_SECOND" validate:"min=0"`
	MaxPerMinute int `yaml:"max_per_minute" env:"RATE_LIMIT_MAX_PER_MINUTE" validate:"min=0"`
	BanDuration  int `yaml:"ban_duration" env:"RATE_LIMIT_BAN_DURATION" validate:"min=0"` // 秒
}

// MetricsConfig Prometheus 配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Addr    string `yaml:"addr" env:"METRICS_ADDR" validate:"required_if=Enabled true"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level   string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	File    string `yaml:"file" env:"LOG_FILE"`
	NoColor bool   `yaml:"no_color" env:"LOG_NO_COLOR"`
}

// Addr 返回监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShutdownTimeoutDuration 返回优雅关闭超时时长
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// CacheTTLDuration 返回页面缓存时长
func (c *PageConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load 加载配置文件：默认值 < 文件 < 环境变量。
// 文件中出现的键（包括显式的 0）都会覆盖默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault 配置文件不存在时使用默认配置，两种情况都会应用环境变量并校验
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	cfg = newConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置（同样应用环境变量，不做校验）
func Default() *Config {
	cfg := newConfig()
	_ = env.Parse(cfg)
	return cfg
}

// Validate 校验配置
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func newConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Page: PageConfig{
			Selector: defaultSelector,
			Title:    defaultTitle,
			CacheTTL: defaultCacheTTL,
		},
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
			Key:  defaultRedisKey,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				MaxPerSecond: defaultMaxPerSecond,
				MaxPerMinute: defaultMaxPerMinute,
				BanDuration:  defaultBanDuration,
			},
		},
		Metrics: MetricsConfig{
			Addr: defaultMetricsAddr,
		},
		Log: LogConfig{
			Level: defaultLogLevel,
		},
	}
}
