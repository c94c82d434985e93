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

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	API           APIConfig           `mapstructure:"api"`
	Proxy         ProxyConfig         `mapstructure:"proxy"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	UI            UIConfig            `mapstructure:"ui"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// APIConfig - внешний сервис журнала прогресса
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	LogEndpoint     string        `mapstructure:"log_endpoint"`
	LogsEndpoint    string        `mapstructure:"logs_endpoint"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout"`
}

type ProxyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Prefix  string        `mapstructure:"prefix"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type NotificationsConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
	CookieName      string        `mapstructure:"cookie_name"`
}

type UIConfig struct {
	Title                   string `mapstructure:"title"`
	PreserveFiltersOnSubmit bool   `mapstructure:"preserve_filters_on_submit"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	NoColor bool   `mapstructure:"no_color"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

func Load() (*Config, error) {
	// .env необязателен, переменные окружения процесса имеют приоритет
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is required")
	}
	if c.Notifications.TTL <= 0 {
		return errors.New("notifications.ttl must be positive")
	}
	if c.Notifications.JanitorInterval <= 0 {
		return errors.New("notifications.janitor_interval must be positive")
	}
	if c.Proxy.Enabled && !strings.HasPrefix(c.Proxy.Prefix, "/") {
		return fmt.Errorf("proxy.prefix must start with '/': %q", c.Proxy.Prefix)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.request_timeout", "30s")

	viper.SetDefault("api.base_url", "http://localhost:5000")
	viper.SetDefault("api.log_endpoint", "/log")
	viper.SetDefault("api.logs_endpoint", "/logs")
	// 0 - без собственного таймаута, как у браузерного fetch
	viper.SetDefault("api.timeout", "0s")
	viper.SetDefault("api.max_idle_conns", 100)
	viper.SetDefault("api.idle_conn_timeout", "90s")

	viper.SetDefault("proxy.enabled", true)
	viper.SetDefault("proxy.prefix", "/api")
	viper.SetDefault("proxy.timeout", "30s")

	viper.SetDefault("notifications.ttl", "5s")
	viper.SetDefault("notifications.janitor_interval", "1s")
	viper.SetDefault("notifications.cookie_name", "progress_session")

	viper.SetDefault("ui.title", "Student Progress Log")
	viper.SetDefault("ui.preserve_filters_on_submit", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
	viper.SetDefault("logging.no_color", false)

	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"})
	viper.SetDefault("cors.exposed_headers", []string{"Link"})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 300)
}
