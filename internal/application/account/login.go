package account

import (
	"context"
	"time"

	"github.com/mradvance/aihub/internal/domain"
)

type LoginResult struct {
	Principal Principal
	Token     string
	ExpiresIn int64 // seconds
}

// Login authenticates a user and issues a signed session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
// The one deliberate exception is the unverified-account error, which the
// portal surfaces so the UI can point the user at the verification page.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// Only surfaced once the password checked out, so verification status
	// is not probeable with guessed credentials.
	if !u.EmailVerified {
		return LoginResult{}, domain.ErrEmailNotVerified()
	}

	p := Principal{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Company: u.Company,
	}

	token, err := s.signer.SignSession(p, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Principal: p,
		Token:     token,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

// SessionTTL exposes the configured session lifetime for cookie MaxAge.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}
