package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.App.IsProd() && cfg.JWT.UsesDevSecret() {
		return nil, fmt.Errorf("%s must be set in production", EnvJWTSecret)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PAWHAVEN_APP_ENV" default:"dev"`
	Port         string `envconfig:"PAWHAVEN_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"PAWHAVEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAWHAVEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN        string `envconfig:"PAWHAVEN_DB_DSN"`
	SQLitePath string `envconfig:"PAWHAVEN_SQLITE_PATH" default:"pawhaven.db"`

	LegacyHost     string `envconfig:"PAWHAVEN_DB_HOST"`
	LegacyPort     int    `envconfig:"PAWHAVEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAWHAVEN_DB_USER"`
	LegacyPassword string `envconfig:"PAWHAVEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAWHAVEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAWHAVEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAWHAVEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PAWHAVEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PAWHAVEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAWHAVEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"PAWHAVEN_DB_SLOW_QUERY" default:"200ms"`
}

// RedisConfig is optional; an empty URL and address disables the auth rate limiter.
type RedisConfig struct {
	URL          string        `envconfig:"PAWHAVEN_REDIS_URL"`
	Address      string        `envconfig:"PAWHAVEN_REDIS_ADDR"`
	Password     string        `envconfig:"PAWHAVEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAWHAVEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAWHAVEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAWHAVEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAWHAVEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAWHAVEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAWHAVEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"PAWHAVEN_JWT_SECRET" default:"pawhaven-dev-secret-change-me"`
	Issuer            string `envconfig:"PAWHAVEN_JWT_ISSUER" default:"pawhaven"`
	ExpirationMinutes int    `envconfig:"PAWHAVEN_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// UsesDevSecret reports whether the signing secret is the insecure built-in fallback.
func (j JWTConfig) UsesDevSecret() bool {
	return j.Secret == "" || j.Secret == DevJWTSecret
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PAWHAVEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PAWHAVEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PAWHAVEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PAWHAVEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PAWHAVEN_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"PAWHAVEN_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PAWHAVEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PAWHAVEN_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PAWHAVEN_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// ensureDSN assembles a postgres URL from the discrete PAWHAVEN_DB_* variables
// when no DSN is given.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	var missing []string
	for _, part := range []struct{ env, value string }{
		{EnvDBHost, db.LegacyHost},
		{EnvDBUser, db.LegacyUser},
		{EnvDBName, db.LegacyName},
	} {
		if strings.TrimSpace(part.value) == "" {
			missing = append(missing, part.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	user := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		user = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   net.JoinHostPort(db.LegacyHost, strconv.Itoa(db.LegacyPort)),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {db.LegacySSLMode}}.Encode()
	}
	db.DSN = dsn.String()
	return nil
}
