package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the api, worker and shop binaries read from the environment.
type Config struct {
	AppEnv   string
	LogLevel string

	Port        int
	PublicDir   string
	CORSOrigins []string

	// InLambda is set by the Lambda runtime; RunLocal overrides it.
	InLambda bool
	RunLocal bool

	JWTSecret string
	TokenTTL  time.Duration

	AWSRegion        string
	AWSEndpoint      string
	IdempotencyTable string
	IdempotencyTTL   time.Duration
	OrdersQueueURL   string
	MetricsNamespace string

	SMTP SMTPConfig

	RedisAddr     string
	RedisPassword string

	APIBaseURL    string
	StateDir      string
	ClientTimeout time.Duration
}

// SMTPConfig configures outgoing mail. Mail is disabled when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Inbox    string
}

// Enabled reports whether enough settings are present to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Load reads a .env file when present and then the process environment.
// Variables already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Port:        getEnvInt("PORT", 8080),
		RunLocal:    getEnvBool("RUN_LOCAL", false),
		InLambda:    os.Getenv("AWS_LAMBDA_RUNTIME_API") != "",
		PublicDir:   getEnv("PUBLIC_DIR", "public"),
		CORSOrigins: getEnvList("CORS_ORIGINS"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:      getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		IdempotencyTable: getEnv("IDEMPOTENCY_TABLE", ""),
		IdempotencyTTL:   getEnvDuration("IDEMPOTENCY_TTL", 48*time.Hour),
		OrdersQueueURL:   getEnv("ORDERS_QUEUE_URL", ""),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", ""),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			Inbox:    getEnv("CONTACT_INBOX", "info@adaraafashion.com"),
		},

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		StateDir:      getEnv("SHOP_STATE_DIR", defaultStateDir()),
		ClientTimeout: getEnvDuration("CLIENT_TIMEOUT", 10*time.Second),
	}
}

// Production reports whether the built frontend should be served from PublicDir.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// ServeLambda reports whether the binaries should hand control to the Lambda runtime.
func (c Config) ServeLambda() bool {
	return c.InLambda && !c.RunLocal
}

// UsesAWS reports whether any optional AWS integration is configured.
func (c Config) UsesAWS() bool {
	return c.IdempotencyTable != "" || c.OrdersQueueURL != "" || c.MetricsNamespace != ""
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adaraa"
	}
	return filepath.Join(home, ".adaraa")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
