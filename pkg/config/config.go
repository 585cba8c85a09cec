package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	AIScore       AIScoreConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env             string        `envconfig:"FARMTOFORK_APP_ENV" required:"true"`
	Port            string        `envconfig:"FARMTOFORK_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"FARMTOFORK_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"FARMTOFORK_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"FARMTOFORK_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FARMTOFORK_DB_DSN"`
	Driver string `envconfig:"FARMTOFORK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FARMTOFORK_DB_HOST"`
	LegacyPort     int    `envconfig:"FARMTOFORK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FARMTOFORK_DB_USER"`
	LegacyPassword string `envconfig:"FARMTOFORK_DB_PASSWORD"`
	LegacyName     string `envconfig:"FARMTOFORK_DB_NAME"`
	LegacySSLMode  string `envconfig:"FARMTOFORK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMTOFORK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMTOFORK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMTOFORK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMTOFORK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the local sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FARMTOFORK_REDIS_URL"`
	Address      string        `envconfig:"FARMTOFORK_REDIS_ADDR"`
	Password     string        `envconfig:"FARMTOFORK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FARMTOFORK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FARMTOFORK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FARMTOFORK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FARMTOFORK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FARMTOFORK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FARMTOFORK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type AIScoreConfig struct {
	ServiceURL     string        `envconfig:"FARMTOFORK_AI_SCORE_SERVICE_URL" default:"http://localhost:5001/score"`
	Enabled        bool          `envconfig:"FARMTOFORK_AI_SCORE_ENABLED" default:"true"`
	ConnectTimeout time.Duration `envconfig:"FARMTOFORK_AI_SCORE_CONNECT_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"FARMTOFORK_AI_SCORE_READ_TIMEOUT" default:"15s"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FARMTOFORK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FARMTOFORK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FARMTOFORK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FARMTOFORK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FARMTOFORK_AUTO_MIGRATE" default:"false"`
	SeedData    bool `envconfig:"FARMTOFORK_SEED_DATA" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = DefaultSQLitePath
		}
		return nil
	}
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
