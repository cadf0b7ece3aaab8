package account

import (
	"context"
	"strings"

	"github.com/mradvance/aihub/internal/domain"
)

// VerifyEmail consumes a submitted code and marks the account verified. The
// transition is terminal: the code and expiry are cleared and a later attempt
// with the same code fails as an invalid code.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (domain.User, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if code == "" {
		return domain.User{}, domain.ErrMissingField("verificationCode")
	}

	u, err := s.users.FindPendingByCode(ctx, email, code)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.User{}, domain.ErrInvalidVerificationCode()
		}
		return domain.User{}, err
	}

	if u.VerificationExpires != nil && s.now().After(*u.VerificationExpires) {
		return domain.User{}, domain.ErrVerificationCodeExpired()
	}

	return s.users.MarkVerified(ctx, u.ID)
}
