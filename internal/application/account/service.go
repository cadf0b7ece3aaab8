package account

import (
	"strings"
	"time"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer SessionSigner
	sender CodeSender

	allowedDomains []string
	codeTTL        time.Duration
	sessionTTL     time.Duration

	now func() time.Time
}

type Config struct {
	// AllowedDomains is the fixed registration allowlist (lowercased).
	AllowedDomains []string
	// CodeTTL is the verification-code validity window.
	CodeTTL time.Duration
	// SessionTTL bounds the signed session token.
	SessionTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer SessionSigner, sender CodeSender, cfg Config) *Service {
	codeTTL := cfg.CodeTTL
	if codeTTL <= 0 {
		codeTTL = 24 * time.Hour
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	allowed := make([]string, 0, len(cfg.AllowedDomains))
	for _, d := range cfg.AllowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			allowed = append(allowed, d)
		}
	}
	return &Service{
		users:          users,
		hasher:         hasher,
		signer:         signer,
		sender:         sender,
		allowedDomains: allowed,
		codeTTL:        codeTTL,
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// domainAllowed checks the segment after the first "@" against the
// allowlist. The segment is compared whole, so subdomains never match.
func (s *Service) domainAllowed(email string) (string, bool) {
	parts := strings.Split(email, "@")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	d := strings.ToLower(parts[1])
	for _, a := range s.allowedDomains {
		if d == a {
			return d, true
		}
	}
	return d, false
}
