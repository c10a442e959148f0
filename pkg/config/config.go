package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	FeatureFlags FeatureFlagsConfig
	Workflow     WorkflowConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SELLERHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"SELLERHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SELLERHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SELLERHUB_DB_DSN"`
	Driver string `envconfig:"SELLERHUB_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SELLERHUB_DB_HOST"`
	Port     int    `envconfig:"SELLERHUB_DB_PORT" default:"5432"`
	User     string `envconfig:"SELLERHUB_DB_USER"`
	Password string `envconfig:"SELLERHUB_DB_PASSWORD"`
	Name     string `envconfig:"SELLERHUB_DB_NAME"`
	SSLMode  string `envconfig:"SELLERHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SELLERHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SELLERHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SELLERHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SELLERHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db config: DSN or host/user/name required")
	}
	userInfo := url.User(d.User)
	if d.Password != "" {
		userInfo = url.UserPassword(d.User, d.Password)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SELLERHUB_REDIS_URL"`
	Address      string        `envconfig:"SELLERHUB_REDIS_ADDR"`
	Password     string        `envconfig:"SELLERHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"SELLERHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SELLERHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SELLERHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SELLERHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SELLERHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SELLERHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"SELLERHUB_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"SELLERHUB_PUBSUB_DOMAIN_TOPIC" default:"sellerhub-domain-events"`
	DomainSubscription string `envconfig:"SELLERHUB_PUBSUB_DOMAIN_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"SELLERHUB_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval   time.Duration `envconfig:"SELLERHUB_OUTBOX_POLL_INTERVAL" default:"500ms"`
	MaxAttempts    int           `envconfig:"SELLERHUB_OUTBOX_MAX_ATTEMPTS" default:"10"`
	PublishTimeout time.Duration `envconfig:"SELLERHUB_OUTBOX_PUBLISH_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SELLERHUB_FEATURE_AUTO_MIGRATE" default:"false"`
}

type WorkflowConfig struct {
	CartLockTTL time.Duration `envconfig:"SELLERHUB_WORKFLOW_CART_LOCK_TTL" default:"2m"`
}
