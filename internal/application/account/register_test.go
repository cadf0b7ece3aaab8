package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@nyu.edu",
		Company:   "NYU",
		Password:  "s3cret-pw",
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc, users, _, _, sender := newSvcForTest(t)

	res, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.User.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if res.User.Name != "Ada Lovelace" {
		t.Fatalf("expected full name, got %q", res.User.Name)
	}
	if res.User.EmailVerified {
		t.Fatalf("new account must start unverified")
	}
	if res.User.PasswordHash == "s3cret-pw" {
		t.Fatalf("password stored in plaintext")
	}
	if !res.EmailSent {
		t.Fatalf("expected email_sent=true")
	}

	stored, err := users.GetByEmail(context.Background(), "ada@nyu.edu")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.VerificationCode == nil {
		t.Fatalf("expected a pending verification code")
	}
	if len(*stored.VerificationCode) != 6 {
		t.Fatalf("expected 6-digit code, got %q", *stored.VerificationCode)
	}

	last := sender.lastSent(t)
	if last.email != "ada@nyu.edu" || last.code != *stored.VerificationCode {
		t.Fatalf("sent code %q to %q, stored code %q", last.code, last.email, *stored.VerificationCode)
	}
}

func TestRegister_CodeExpiryIs24h(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := users.GetByEmail(context.Background(), "ada@nyu.edu")
	if stored.VerificationExpires == nil {
		t.Fatalf("expected expiry to be set")
	}
	if !stored.VerificationExpires.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected expiry 24h after registration, got %v", stored.VerificationExpires)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	for _, tc := range []struct {
		mutate func(*RegisterInput)
		field  string
	}{
		{func(in *RegisterInput) { in.FirstName = " " }, "firstName"},
		{func(in *RegisterInput) { in.LastName = "" }, "lastName"},
		{func(in *RegisterInput) { in.Email = "" }, "email"},
		{func(in *RegisterInput) { in.Company = "" }, "company"},
		{func(in *RegisterInput) { in.Password = "" }, "password"},
	} {
		in := validInput()
		tc.mutate(&in)
		_, err := svc.Register(context.Background(), in)
		requireErrCode(t, err, "missing_field")
	}
}

func TestRegister_DomainNotAllowed(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	in := validInput()
	in.Email = "ada@gmail.com"
	_, err := svc.Register(context.Background(), in)
	requireErrCode(t, err, "domain_not_allowed")
}

func TestRegister_SubdomainNotAllowed(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	// exact match only, mail.nyu.edu is a different domain
	in := validInput()
	in.Email = "ada@mail.nyu.edu"
	_, err := svc.Register(context.Background(), in)
	requireErrCode(t, err, "domain_not_allowed")
}

func TestRegister_DomainTakenAfterFirstAt(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	// With more than one "@" the segment after the first one governs. Such
	// addresses are rejected earlier by DTO validation; the policy check
	// itself mirrors that rule for callers reaching it directly.
	in := validInput()
	in.Email = "ada@evil.com@nyu.edu"
	_, err := svc.Register(context.Background(), in)
	requireErrCode(t, err, "domain_not_allowed")

	in = validInput()
	in.Email = "ada@@nyu.edu"
	_, err = svc.Register(context.Background(), in)
	requireErrCode(t, err, "domain_not_allowed")
}

func TestRegister_EmailNormalized(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)

	in := validInput()
	in.Email = "  Ada@NYU.EDU "
	res, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.Email != "ada@nyu.edu" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if _, err := users.GetByEmail(context.Background(), "ada@nyu.edu"); err != nil {
		t.Fatalf("expected lookup by normalized email: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), validInput())
	requireErrCode(t, err, "email_already_exists")
}

func TestRegister_EmailDeliveryFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	svc, users, _, _, sender := newSvcForTest(t)
	sender.sendErr = errors.New("smtp down")

	res, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("registration should survive delivery failure: %v", err)
	}
	if res.EmailSent {
		t.Fatalf("expected email_sent=false")
	}
	if _, err := users.GetByEmail(context.Background(), "ada@nyu.edu"); err != nil {
		t.Fatalf("user should still be persisted: %v", err)
	}
}

func TestRegister_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.getByEmailErr = errors.New("connection reset")

	_, err := svc.Register(context.Background(), validInput())
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected repo error to propagate, got %v", err)
	}
}
