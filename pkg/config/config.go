package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App             AppConfig
	DB              DBConfig
	Redis           RedisConfig
	SMTP            SMTPConfig
	Admin           AdminConfig
	SubmitRateLimit SubmitRateLimitConfig
	FeatureFlags    FeatureFlagsConfig
	CORS            CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"METERLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"METERLINE_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"METERLINE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"METERLINE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"METERLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"METERLINE_DB_DSN"`
	Driver string `envconfig:"METERLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"METERLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"METERLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"METERLINE_DB_USER"`
	LegacyPassword string `envconfig:"METERLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"METERLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"METERLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"METERLINE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"METERLINE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"METERLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"METERLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"METERLINE_REDIS_URL"`
	Address      string        `envconfig:"METERLINE_REDIS_ADDR"`
	Password     string        `envconfig:"METERLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"METERLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"METERLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"METERLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"METERLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"METERLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"METERLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SMTPConfig drives the order and contact notification mailer.
type SMTPConfig struct {
	Host            string        `envconfig:"METERLINE_SMTP_HOST"`
	Port            int           `envconfig:"METERLINE_SMTP_PORT" default:"465"`
	Username        string        `envconfig:"METERLINE_SMTP_USER"`
	Password        string        `envconfig:"METERLINE_SMTP_PASS"`
	FromName        string        `envconfig:"METERLINE_SMTP_FROM_NAME" default:"Meterline Storefront"`
	FromAddress     string        `envconfig:"METERLINE_SMTP_FROM_ADDRESS"`
	StaffRecipients []string      `envconfig:"METERLINE_SMTP_STAFF_RECIPIENTS"`
	CopyCustomer    bool          `envconfig:"METERLINE_SMTP_COPY_CUSTOMER" default:"false"`
	SendTimeout     time.Duration `envconfig:"METERLINE_SMTP_SEND_TIMEOUT" default:"30s"`
}

// Enabled reports whether the mailer has enough configuration to dispatch.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.FromAddress != "" && len(s.StaffRecipients) > 0
}

type AdminConfig struct {
	APIKey string `envconfig:"METERLINE_ADMIN_API_KEY"`
}

type SubmitRateLimitConfig struct {
	Window         time.Duration `envconfig:"METERLINE_SUBMIT_RATE_LIMIT_WINDOW" default:"1m"`
	OrderIPLimit   int           `envconfig:"METERLINE_SUBMIT_RATE_LIMIT_ORDER_IP_LIMIT" default:"5"`
	ContactIPLimit int           `envconfig:"METERLINE_SUBMIT_RATE_LIMIT_CONTACT_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"METERLINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"METERLINE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"METERLINE_CORS_ALLOWED_ORIGINS"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = "file:meterline.db?cache=shared&_fk=1"
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
