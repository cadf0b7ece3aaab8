package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mradvance/aihub/internal/domain"
	"github.com/mradvance/aihub/internal/logger"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Password  string
}

type RegisterResult struct {
	User domain.User
	// EmailSent is false when code delivery failed; registration still
	// succeeds and the failure is only logged.
	EmailSent bool
}

// Register creates an unverified account with a fresh verification code and
// attempts to deliver the code by email.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Company = strings.TrimSpace(in.Company)
	in.Email = normalizeEmail(in.Email)

	switch {
	case in.FirstName == "":
		return RegisterResult{}, domain.ErrMissingField("firstName")
	case in.LastName == "":
		return RegisterResult{}, domain.ErrMissingField("lastName")
	case in.Email == "":
		return RegisterResult{}, domain.ErrMissingField("email")
	case in.Company == "":
		return RegisterResult{}, domain.ErrMissingField("company")
	case in.Password == "":
		return RegisterResult{}, domain.ErrMissingField("password")
	}

	if d, ok := s.domainAllowed(in.Email); !ok {
		return RegisterResult{}, domain.ErrDomainNotAllowed(d, s.allowedDomains)
	}

	// Check first for a friendly error; the unique constraint still catches
	// the concurrent-registration race inside Create.
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	code, err := newVerificationCode()
	if err != nil {
		return RegisterResult{}, domain.ErrRandomFailed(err)
	}
	expires := s.now().Add(s.codeTTL)

	u := domain.User{
		ID:                  uuid.NewString(),
		Email:               in.Email,
		Name:                in.FirstName + " " + in.LastName,
		Company:             in.Company,
		PasswordHash:        hash,
		EmailVerified:       false,
		VerificationCode:    &code,
		VerificationExpires: &expires,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	emailSent := true
	if err := s.sender.SendVerificationCode(ctx, created.Email, code); err != nil {
		emailSent = false
		logger.WithCtx(ctx).Warn().Err(err).
			Str("email", created.Email).
			Msg("verification email delivery failed")
	}

	return RegisterResult{User: created, EmailSent: emailSent}, nil
}
