package account

import (
	"context"

	"github.com/mradvance/aihub/internal/domain"
	"github.com/mradvance/aihub/internal/logger"
)

// ResendCode regenerates the verification code for an unverified account and
// attempts delivery. Backs the dedicated resend endpoint, which distinguishes
// unknown accounts from already-verified ones.
func (s *Service) ResendCode(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u.EmailVerified {
		return false, domain.ErrAlreadyVerified()
	}

	return s.issueCode(ctx, u)
}

// RefreshPendingCode backs the PUT variant on the verify endpoint. Unknown
// and already-verified accounts collapse into one non-distinguishing error.
func (s *Service) RefreshPendingCode(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u.EmailVerified {
		return false, domain.ErrNotPendingVerification()
	}

	return s.issueCode(ctx, u)
}

// issueCode is the single code-reissue path shared by both resend operations:
// fresh code, fresh expiry window, best-effort delivery.
func (s *Service) issueCode(ctx context.Context, u domain.User) (bool, error) {
	code, err := newVerificationCode()
	if err != nil {
		return false, domain.ErrRandomFailed(err)
	}
	expires := s.now().Add(s.codeTTL)

	if err := s.users.SetVerificationCode(ctx, u.ID, code, expires); err != nil {
		return false, err
	}

	if err := s.sender.SendVerificationCode(ctx, u.Email, code); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("email", u.Email).
			Msg("verification email delivery failed")
		return false, nil
	}
	return true, nil
}
