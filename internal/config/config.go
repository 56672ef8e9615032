// Package config загружает настройки клиента и dev сервера из необязательного YAML
// файла, переменных окружения ADAKINGS_* и привязанных флагов командной строки.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/retry"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// EnvPrefix добавляется ко всем переменным окружения: ADAKINGS_SERVER_URL, ADAKINGS_SYNC_EXEC_TIMEOUT
const EnvPrefix = "ADAKINGS"

// Config содержит все настройки
type Config struct {
	ServerURL    string             `mapstructure:"server_url"`
	DBPath       string             `mapstructure:"db_path"`
	MetricsAddr  string             `mapstructure:"metrics_addr"`
	RoutesFile   string             `mapstructure:"routes_file"`
	Log          LogConfig          `mapstructure:"log"`
	Sync         SyncConfig         `mapstructure:"sync"`
	Transactions TransactionsConfig `mapstructure:"transactions"`
	Network      NetworkConfig      `mapstructure:"network"`
	Server       ServerConfig       `mapstructure:"server"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SyncConfig настройки очереди синхронизации
type SyncConfig struct {
	Policies       map[string]retry.Policy `mapstructure:"policies"`
	ExecTimeout    time.Duration           `mapstructure:"exec_timeout"`
	SweepInterval  time.Duration           `mapstructure:"sweep_interval"`
	SnapshotMaxAge time.Duration           `mapstructure:"snapshot_max_age"`
	DrainInterval  time.Duration           `mapstructure:"drain_interval"`
}

// TransactionsConfig настройки кеша транзакций
type TransactionsConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// NetworkConfig настройки проверки связи с сервером
type NetworkConfig struct {
	CheckInterval time.Duration `mapstructure:"check_interval"`
	CheckTimeout  time.Duration `mapstructure:"check_timeout"`
}

// ServerConfig используется только dev сервером
type ServerConfig struct {
	Addr      string        `mapstructure:"addr"`
	DBPath    string        `mapstructure:"db_path"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
	RateLimit int           `mapstructure:"rate_limit"`
}

// New возвращает viper с умолчаниями и привязкой окружения.
// Флаги привязывает вызывающий через BindPFlag до Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("db_path", "adakings-client.db")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("routes_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sync.exec_timeout", 30*time.Second)
	v.SetDefault("sync.sweep_interval", 30*time.Second)
	v.SetDefault("sync.snapshot_max_age", 24*time.Hour)
	v.SetDefault("sync.drain_interval", time.Minute)

	v.SetDefault("transactions.ttl", 30*time.Second)
	v.SetDefault("transactions.fetch_timeout", 10*time.Second)

	v.SetDefault("network.check_interval", 15*time.Second)
	v.SetDefault("network.check_timeout", 5*time.Second)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.db_path", "adakings-server.db")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.access_ttl", 12*time.Hour)
	v.SetDefault("server.rate_limit", 100)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load читает файл конфигурации (явный путь или adakings.yaml в рабочей
// директории и $HOME/.config/adakings) и разбирает объединенные настройки.
// Отсутствие файла по умолчанию не ошибка.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("adakings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/adakings")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет настройки клиента
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q", c.ServerURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url must use http or https, got %q", u.Scheme)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	for name, p := range c.Sync.Policies {
		if p.MaxRetries < 0 {
			return fmt.Errorf("sync.policies.%s: max_retries cannot be negative", name)
		}
		if p.BackoffFactor != 0 && p.BackoffFactor < 1 {
			return fmt.Errorf("sync.policies.%s: backoff_factor must be at least 1", name)
		}
	}
	return nil
}

// ValidateServer проверяет настройки, нужные dev серверу
func (c *Config) ValidateServer() error {
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required (ADAKINGS_SERVER_JWT_SECRET)")
	}
	if len(c.Server.JWTSecret) < 16 {
		return fmt.Errorf("server.jwt_secret must be at least 16 characters")
	}
	if c.Server.AccessTTL <= 0 {
		return fmt.Errorf("server.access_ttl must be positive")
	}
	return nil
}

// RetryPolicies превращает заданные переопределения в политики повторов
func (c *Config) RetryPolicies() retry.Policies {
	if len(c.Sync.Policies) == 0 {
		return nil
	}
	policies := make(retry.Policies, len(c.Sync.Policies))
	for name, p := range c.Sync.Policies {
		policies[models.OperationType(name)] = p
	}
	return policies
}
