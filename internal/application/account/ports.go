package account

import (
	"context"
	"time"

	"github.com/mradvance/aihub/internal/domain"
)

/*
UserRepo
--------
Persistence port for portal accounts.
Only describes WHAT the account service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// FindPendingByCode matches (email, code, email_verified = false).
	// A verified account never matches, so a second verify attempt with the
	// consumed code fails the same way a wrong code does.
	FindPendingByCode(ctx context.Context, email, code string) (domain.User, error)

	// MarkVerified flips email_verified, clears code and expiry, bumps
	// updated_at, and returns the updated record.
	MarkVerified(ctx context.Context, userID string) (domain.User, error)

	// SetVerificationCode replaces the pending code and its expiry.
	SetVerificationCode(ctx context.Context, userID, code string, expires time.Time) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

// Principal is the minimal identity embedded in the signed session token and
// rehydrated on each request.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	Company string
}

/*
SessionSigner
-------------
Issues and verifies the signed session token (JWT).
Used by service + session middleware.
*/
type SessionSigner interface {
	SignSession(p Principal, ttl time.Duration) (string, error)
	VerifySession(token string) (Principal, error)
}

/*
CodeSender
----------
Outbound delivery of verification codes. Delivery failure is non-fatal for
the calling operation; the service logs it and reports a flag.
*/
type CodeSender interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}
