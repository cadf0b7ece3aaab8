package account

import (
	"context"
	"testing"
	"time"
)

// registerPending registers a user and returns the pending code.
func registerPending(t *testing.T, svc *Service, users *fakeUserRepo, email string) string {
	t.Helper()

	in := validInput()
	in.Email = email
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	u, err := users.GetByEmail(context.Background(), email)
	if err != nil || u.VerificationCode == nil {
		t.Fatalf("no pending code for %s: %v", email, err)
	}
	return *u.VerificationCode
}

func TestVerifyEmail_Success(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	code := registerPending(t, svc, users, "ada@nyu.edu")

	u, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.EmailVerified {
		t.Fatalf("expected verified user")
	}
	if u.VerificationCode != nil || u.VerificationExpires != nil {
		t.Fatalf("expected code and expiry cleared after verification")
	}
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	registerPending(t, svc, users, "ada@nyu.edu")

	_, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", "000000")
	requireErrCode(t, err, "invalid_verification_code")
}

func TestVerifyEmail_UnknownEmailSameError(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.VerifyEmail(context.Background(), "ghost@nyu.edu", "123456")
	requireErrCode(t, err, "invalid_verification_code")
}

func TestVerifyEmail_ReplayedCodeSameError(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	code := registerPending(t, svc, users, "ada@nyu.edu")

	if _, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", code); err != nil {
		t.Fatalf("first verification failed: %v", err)
	}

	// The consumed code on a now-verified account is indistinguishable from
	// a wrong code.
	_, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", code)
	requireErrCode(t, err, "invalid_verification_code")
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	code := registerPending(t, svc, users, "ada@nyu.edu")

	// One second past the 24h window.
	now = now.Add(24*time.Hour + time.Second)
	_, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", code)
	requireErrCode(t, err, "verification_code_expired")
}

func TestVerifyEmail_BoundaryNotExpired(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	code := registerPending(t, svc, users, "ada@nyu.edu")

	// Exactly at the deadline still verifies.
	now = now.Add(24 * time.Hour)
	if _, err := svc.VerifyEmail(context.Background(), "ada@nyu.edu", code); err != nil {
		t.Fatalf("expected verification at the deadline to succeed: %v", err)
	}
}

func TestVerifyEmail_MissingInputs(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.VerifyEmail(context.Background(), "", "123456")
	requireErrCode(t, err, "missing_field")

	_, err = svc.VerifyEmail(context.Background(), "ada@nyu.edu", "  ")
	requireErrCode(t, err, "missing_field")
}
