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

// DevJWTSecret 仅在非 release 模式下兜底使用
const DevJWTSecret = "dev-secret-change-me"

var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required in release mode")

type Config struct {
	Mode     string         `mapstructure:"mode"`
	Port     int            `mapstructure:"port"`
	BaseURL  string         `mapstructure:"base_url"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Login    LoginConfig    `mapstructure:"login"`
	Events   EventsConfig   `mapstructure:"events"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // mysql | sqlite
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	CookieSecure      bool          `mapstructure:"cookie_secure"`
	SessionSecret     string        `mapstructure:"session_secret"` // 页面跳转用的 cookie store
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // 为空则不启用
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoginConfig struct {
	MaxFailures int           `mapstructure:"max_failures"`
	LockWindow  time.Duration `mapstructure:"lock_window"`
}

type EventsConfig struct {
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RabbitMQConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	NotifyTo string `mapstructure:"notify_to"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load 读取 .env、config/config.<env>.yaml 以及 APP_ 前缀的环境变量
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v := newViper()
	v.SetConfigFile(fmt.Sprintf("config/config.%s.yaml", env))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "debug")
	v.SetDefault("port", 8080)
	v.SetDefault("base_url", "")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "user:password@tcp(127.0.0.1:3306)/directory?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", "168h")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("login.max_failures", 5)
	v.SetDefault("login.lock_window", "15m")
	v.SetDefault("events.kafka.brokers", []string{})
	v.SetDefault("events.kafka.topic", "directory-events")
	v.SetDefault("events.rabbitmq.url", "")
	v.SetDefault("events.rabbitmq.queue", "directory-events")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.notify_to", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// AutomaticEnv 给到的是逗号分隔字符串
	if len(cfg.Events.Kafka.Brokers) == 1 && strings.Contains(cfg.Events.Kafka.Brokers[0], ",") {
		cfg.Events.Kafka.Brokers = strings.Split(cfg.Events.Kafka.Brokers[0], ",")
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Mode == "release" {
			return nil, ErrMissingJWTSecret
		}
		cfg.Auth.JWTSecret = DevJWTSecret
	}
	if cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = cfg.Auth.JWTSecret
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	}
	return &cfg, nil
}

// String 打印配置时隐藏敏感字段
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Port: %d, DB: %s, Redis: %q, Kafka: %v, RabbitMQ: %t, SMTP: %q, Auth: *** (masked) ***}",
		c.Mode, c.Port, c.Database.Driver, c.Redis.Addr, c.Events.Kafka.Brokers, c.Events.RabbitMQ.URL != "", c.SMTP.Host)
}
