package config

import (
	"fmt"
	"time"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds accepts "10s", "5m" or a bare number of seconds.
type durationSeconds time.Duration

// SetValue implements the cleanenv setter.
func (d *durationSeconds) SetValue(s string) error {
	v, err := utils.ParseDurationEnv(s)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	PG    PGConfig
	Redis RedisConfig
}

type AppConfig struct {
	Name    string `env:"APP_NAME" env-default:"packandgo"`
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type PGConfig struct {
	DSN           string `env:"PG_DSN" env-required:"true"`
	MaxConns      int32  `env:"PG_MAX_CONNS" env-default:"10"`
	MigrationsDir string `env:"PG_MIGRATIONS_DIR" env-default:"./migrations"`
}

type RedisConfig struct {
	// Addr is "host:port". Optional if URL is set.
	Addr     string `env:"REDIS_ADDR" env-default:""`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	// URL overrides Addr/Password/DB if set, e.g. redis://default:pw@host:6379/0.
	URL string `env:"REDIS_URL" env-default:""`

	CacheTTL   durationSeconds `env:"REDIS_CACHE_TTL" env-default:"60"`
	SessionTTL durationSeconds `env:"SESSION_TTL" env-default:"24h"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.Redis.URL != "" {
		addr, password, db, err := utils.ParseRedisURL(cfg.Redis.URL)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_URL: %w", err)
		}
		cfg.Redis.Addr = addr
		cfg.Redis.Password = password
		cfg.Redis.DB = db
	}
	if cfg.Redis.Addr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR or REDIS_URL is required")
	}
	return cfg, nil
}
