package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"shared-finance-go/pkg/logger"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	Env   string
	HTTP  HTTPConfig
	DB    DBConfig
	Auth  AuthConfig
	Cache CacheConfig
	App   AppConfig
}

type HTTPConfig struct {
	Port           string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	SkipAuth      bool
	MockUserID    string
	MockUserEmail string
	MockUserName  string
}

type CacheConfig struct {
	Driver   string
	RedisURL string
	TTL      time.Duration
}

type AppConfig struct {
	TimeZone string
}

// Load reads .env into the process environment, then resolves settings from
// defaults, the optional config file and environment variables.
func Load(log logger.Logger, configFile string) (Config, error) {
	if err := loadDotEnv(log); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
		log.Info("config: loaded file", "path", v.ConfigFileUsed())
	}

	cfg := Config{
		Env: v.GetString("env"),
		HTTP: HTTPConfig{
			Port:           v.GetString("http.port"),
			CORSOrigins:    splitList(v.GetString("http.cors_origins")),
			RequestTimeout: v.GetDuration("http.request_timeout"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			DSN:             v.GetString("db.dsn"),
			Host:            v.GetString("db.host"),
			Port:            v.GetString("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			TimeZone:        v.GetString("db.timezone"),
			SQLitePath:      v.GetString("db.sqlite_path"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("auth.jwt_secret"),
			TokenTTL:      v.GetDuration("auth.token_ttl"),
			SkipAuth:      v.GetBool("auth.skip"),
			MockUserID:    strings.TrimSpace(v.GetString("auth.mock_user_id")),
			MockUserEmail: strings.TrimSpace(v.GetString("auth.mock_user_email")),
			MockUserName:  strings.TrimSpace(v.GetString("auth.mock_user_name")),
		},
		Cache: CacheConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("cache.driver"))),
			RedisURL: v.GetString("cache.redis_url"),
			TTL:      v.GetDuration("cache.ttl"),
		},
		App: AppConfig{
			TimeZone: v.GetString("app.timezone"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("env", "development")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.cors_origins", "http://localhost:5173")
	v.SetDefault("http.request_timeout", 30*time.Second)

	v.SetDefault("db.driver", DBDriverPostgres)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "shared_finance")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.sqlite_path", "shared-finance.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.skip", false)
	v.SetDefault("auth.mock_user_id", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("auth.mock_user_email", "dev@example.com")
	v.SetDefault("auth.mock_user_name", "Dev")

	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.ttl", time.Minute)

	v.SetDefault("app.timezone", "UTC")

	// db.max_open_conns is read from DB_MAX_OPEN_CONNS.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}

	switch c.Cache.Driver {
	case CacheDriverNone, CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("config: unsupported cache driver %q", c.Cache.Driver)
	}

	if !c.Auth.SkipAuth && c.Auth.JWTSecret == "" {
		return errors.New("config: AUTH_JWT_SECRET is required unless AUTH_SKIP is set")
	}

	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("config: app timezone: %w", err)
	}
	return nil
}

func (c AppConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DBDriverSQLite {
		return c.SQLitePath
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
