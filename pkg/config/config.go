package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Sendgrid     SendgridConfig
	Notify       NotifyConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"APEX_APP_ENV" required:"true"`
	Port         string `envconfig:"APEX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"APEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"APEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"APEX_DB_DSN"`
	Driver string `envconfig:"APEX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"APEX_DB_HOST"`
	LegacyPort     int    `envconfig:"APEX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"APEX_DB_USER"`
	LegacyPassword string `envconfig:"APEX_DB_PASSWORD"`
	LegacyName     string `envconfig:"APEX_DB_NAME"`
	LegacySSLMode  string `envconfig:"APEX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"APEX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"APEX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"APEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"APEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"APEX_REDIS_URL"`
	Address      string        `envconfig:"APEX_REDIS_ADDR"`
	Password     string        `envconfig:"APEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"APEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"APEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"APEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"APEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"APEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"APEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"APEX_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"APEX_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"APEX_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"APEX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"APEX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"APEX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"APEX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"APEX_ARGON_KEY_LEN" default:"32"`
}

// RateLimitConfig throttles the abuse-prone public surfaces.
type RateLimitConfig struct {
	LoginWindow          time.Duration `envconfig:"APEX_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit      int           `envconfig:"APEX_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit         int           `envconfig:"APEX_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	QuoteWindow          time.Duration `envconfig:"APEX_RATE_LIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteEmailLimit      int           `envconfig:"APEX_RATE_LIMIT_QUOTE_EMAIL_LIMIT" default:"5"`
	QuoteIPLimit         int           `envconfig:"APEX_RATE_LIMIT_QUOTE_IP_LIMIT" default:"15"`
	NewsletterWindow     time.Duration `envconfig:"APEX_RATE_LIMIT_NEWSLETTER_WINDOW" default:"5m"`
	NewsletterEmailLimit int           `envconfig:"APEX_RATE_LIMIT_NEWSLETTER_EMAIL_LIMIT" default:"3"`
	NewsletterIPLimit    int           `envconfig:"APEX_RATE_LIMIT_NEWSLETTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"APEX_AUTO_MIGRATE" default:"false"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"APEX_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"APEX_SENDGRID_FROM_EMAIL"`
}

// NotifyConfig routes internal notifications raised by public submissions.
type NotifyConfig struct {
	SalesInbox  string `envconfig:"APEX_NOTIFY_SALES_INBOX"`
	MaxAttempts int    `envconfig:"APEX_NOTIFY_MAX_ATTEMPTS" default:"3"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"APEX_CORS_ALLOWED_ORIGINS"`
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
