package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// Config aggregates runtime configuration for both binaries.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Directory    DirectoryConfig
	Media        MediaConfig
	Wizard       WizardConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session and sign-in parameters.
type AuthConfig struct {
	JWTSecret             string
	SessionTTLMinutes     int
	CookieName            string
	CookieSecure          bool
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURL     string
	PostSignInRedirect    string
	PostSignOutRedirect   string
	SignInPath            string
	StateCookieTTLSeconds int
}

// DirectoryConfig points the BFF at the status and submission services.
type DirectoryConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	StatusCacheSecs int
}

// MediaConfig configures image storage.
type MediaConfig struct {
	CloudinaryURL    string
	Folder           string
	MaxImageBytes    int64
	UploadsPerMinute int
}

// WizardConfig configures the registration flow.
type WizardConfig struct {
	Variant            string
	IdleTTLMinutes     int
	SweepIntervalSecs  int
	AlreadySubmittedTo string
	SuccessTo          string
}

// NotificationConfig holds outbound email settings.
type NotificationConfig struct {
	EmailFrom string
	AWSRegion string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "bursa-register"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes:     getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 60*24),
			CookieName:            getEnv("AUTH_COOKIE_NAME", "bursa_session"),
			CookieSecure:          getEnvAsBool("AUTH_COOKIE_SECURE", false),
			GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:     getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/callback"),
			PostSignInRedirect:    getEnv("AUTH_POST_SIGNIN_REDIRECT", "/submit"),
			PostSignOutRedirect:   getEnv("AUTH_POST_SIGNOUT_REDIRECT", "/"),
			SignInPath:            getEnv("AUTH_SIGNIN_PATH", "/auth/signin"),
			StateCookieTTLSeconds: getEnvAsInt("AUTH_STATE_TTL_SECONDS", 600),
		},
		Directory: DirectoryConfig{
			BaseURL:         getEnv("DIRECTORY_API_URL", "http://127.0.0.1:8081"),
			TimeoutSeconds:  getEnvAsInt("DIRECTORY_TIMEOUT_SECONDS", 15),
			StatusCacheSecs: getEnvAsInt("DIRECTORY_STATUS_CACHE_SECONDS", 30),
		},
		Media: MediaConfig{
			CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
			Folder:           getEnv("MEDIA_FOLDER", "submissions"),
			MaxImageBytes:    int64(getEnvAsInt("MEDIA_MAX_IMAGE_BYTES", 5<<20)),
			UploadsPerMinute: getEnvAsInt("MEDIA_UPLOADS_PER_MINUTE", 30),
		},
		Wizard: WizardConfig{
			Variant:            getEnv("WIZARD_VARIANT", domain.VariantRich.Name),
			IdleTTLMinutes:     getEnvAsInt("WIZARD_IDLE_TTL_MINUTES", 60),
			SweepIntervalSecs:  getEnvAsInt("WIZARD_SWEEP_INTERVAL_SECONDS", 60),
			AlreadySubmittedTo: getEnv("WIZARD_ALREADY_SUBMITTED_PATH", "/already-submitted"),
			SuccessTo:          getEnv("WIZARD_SUCCESS_PATH", "/success"),
		},
		Notification: NotificationConfig{
			EmailFrom: getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			AWSRegion: os.Getenv("AWS_REGION"),
		},
	}

	if _, err := domain.ParseVariant(cfg.Wizard.Variant); err != nil {
		return nil, fmt.Errorf("invalid WIZARD_VARIANT: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns how long an issued session stays valid.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// OAuthEnabled reports whether Google sign-in credentials are present.
func (a AuthConfig) OAuthEnabled() bool {
	return a.GoogleClientID != "" && a.GoogleClientSecret != ""
}

// Timeout returns the outbound request timeout.
func (d DirectoryConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// StatusCacheTTL returns how long a status report may be served from cache.
func (d DirectoryConfig) StatusCacheTTL() time.Duration {
	return time.Duration(d.StatusCacheSecs) * time.Second
}

// IdleTTL returns how long an untouched wizard is kept.
func (w WizardConfig) IdleTTL() time.Duration {
	return time.Duration(w.IdleTTLMinutes) * time.Minute
}

// SweepInterval returns the wizard janitor period.
func (w WizardConfig) SweepInterval() time.Duration {
	if w.SweepIntervalSecs <= 0 {
		return time.Minute
	}
	return time.Duration(w.SweepIntervalSecs) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
