package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Recommend RecommendConfig
	Eventing  EventingConfig
	Flags     FeatureFlagsConfig
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
	Env          string `envconfig:"CELLARMATE_APP_ENV" required:"true"`
	Port         string `envconfig:"CELLARMATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CELLARMATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CELLARMATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CELLARMATE_DB_DSN"`
	Driver string `envconfig:"CELLARMATE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CELLARMATE_DB_HOST"`
	LegacyPort     int    `envconfig:"CELLARMATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CELLARMATE_DB_USER"`
	LegacyPassword string `envconfig:"CELLARMATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CELLARMATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CELLARMATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CELLARMATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CELLARMATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CELLARMATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CELLARMATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CELLARMATE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CELLARMATE_REDIS_ADDR"`
	Password     string        `envconfig:"CELLARMATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CELLARMATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CELLARMATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CELLARMATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CELLARMATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CELLARMATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CELLARMATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// RecommendConfig tunes the recommendation pipeline. Rule tables (price
// bands, ABV ranges, category keywords) are compiled defaults in
// internal/recommend; only sizing knobs are environment-driven.
type RecommendConfig struct {
	ResultLimit     int `envconfig:"CELLARMATE_RECOMMEND_RESULT_LIMIT" default:"10"`
	ProducerCap     int `envconfig:"CELLARMATE_RECOMMEND_PRODUCER_CAP" default:"2"`
	CountryCap      int `envconfig:"CELLARMATE_RECOMMEND_COUNTRY_CAP" default:"3"`
	FetchMultiplier int `envconfig:"CELLARMATE_RECOMMEND_FETCH_MULTIPLIER" default:"5"`
	SimilarLimit    int `envconfig:"CELLARMATE_RECOMMEND_SIMILAR_LIMIT" default:"6"`
	TrendingLimit   int `envconfig:"CELLARMATE_RECOMMEND_TRENDING_LIMIT" default:"10"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"CELLARMATE_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CELLARMATE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
