package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "MUSEUM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
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
	Env          string `envconfig:"MUSEUM_APP_ENV" required:"true"`
	Port         string `envconfig:"MUSEUM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MUSEUM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MUSEUM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MUSEUM_DB_DSN"`
	Driver string `envconfig:"MUSEUM_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MUSEUM_DB_HOST"`
	Port     int    `envconfig:"MUSEUM_DB_PORT" default:"5432"`
	User     string `envconfig:"MUSEUM_DB_USER"`
	Password string `envconfig:"MUSEUM_DB_PASSWORD"`
	Name     string `envconfig:"MUSEUM_DB_NAME"`
	SSLMode  string `envconfig:"MUSEUM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MUSEUM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MUSEUM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MUSEUM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MUSEUM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MUSEUM_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"MUSEUM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MUSEUM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MUSEUM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MUSEUM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MUSEUM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MUSEUM_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MUSEUM_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MUSEUM_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MUSEUM_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MUSEUM_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MUSEUM_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MUSEUM_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MUSEUM_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MUSEUM_CORS_ALLOWED_ORIGINS" default:"*"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MUSEUM_LOGIN_RATE_WINDOW" default:"10m"`
	LoginIPLimit       int           `envconfig:"MUSEUM_LOGIN_RATE_IP_LIMIT" default:"20"`
	LoginEmailLimit    int           `envconfig:"MUSEUM_LOGIN_RATE_EMAIL_LIMIT" default:"10"`
	RegisterWindow     time.Duration `envconfig:"MUSEUM_REGISTER_RATE_WINDOW" default:"1h"`
	RegisterIPLimit    int           `envconfig:"MUSEUM_REGISTER_RATE_IP_LIMIT" default:"10"`
	RegisterEmailLimit int           `envconfig:"MUSEUM_REGISTER_RATE_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MUSEUM_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MUSEUM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for _, pair := range []struct{ env, value string }{
		{"MUSEUM_DB_HOST", db.Host},
		{"MUSEUM_DB_USER", db.User},
		{"MUSEUM_DB_NAME", db.Name},
	} {
		if pair.value == "" {
			missing = append(missing, pair.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either MUSEUM_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
