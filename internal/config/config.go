package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultAllowedDomains is the registration allowlist used when
// ALLOWED_EMAIL_DOMAINS is not set.
var defaultAllowedDomains = []string{"mradvancellc.com", "nyu.edu", "nyulangone.org"}

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret  string
	SessionTTL time.Duration

	// Registration policy
	AllowedDomains      []string
	VerificationCodeTTL time.Duration

	// Infrastructure
	DBAddr        string
	DBAutoMigrate bool
	RedisAddr     string

	// Outbound email
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	// Assessment backend the chat and risk-score endpoints relay to.
	BackendURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// optional with defaults
	st, err := getDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = st

	ct, err := getDuration("VERIFICATION_CODE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VerificationCodeTTL = ct

	cfg.AllowedDomains = splitCSV(getEnv("ALLOWED_EMAIL_DOMAINS", ""))
	if len(cfg.AllowedDomains) == 0 {
		cfg.AllowedDomains = defaultAllowedDomains
	}

	cfg.DBAutoMigrate = getEnv("DB_AUTO_MIGRATE", "true") == "true"

	// Redis is optional. Without it rate limiting is disabled.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	// SMTP is optional too. Without a host the service falls back to a
	// log-only sender, which only makes sense outside prod.
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "AI Hub <no-reply@mradvancellc.com>")

	port, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port

	cfg.BackendURL = getEnv("BACKEND_URL", "http://localhost:8000")

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	// The write timeout bounds the chat relay stream as well, so it is
	// generous by default.
	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
