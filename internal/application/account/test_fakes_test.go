package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mradvance/aihub/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr error
	createErr     error
	setCodeErr    error

	// record calls
	setCodes []struct {
		id, code string
		expires  time.Time
	}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) FindPendingByCode(ctx context.Context, email, code string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok || u.EmailVerified || u.VerificationCode == nil || *u.VerificationCode != code {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, userID string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.EmailVerified = true
	u.VerificationCode = nil
	u.VerificationExpires = nil
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) SetVerificationCode(ctx context.Context, userID, code string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setCodeErr != nil {
		return f.setCodeErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationCode = &code
	u.VerificationExpires = &expires
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.setCodes = append(f.setCodes, struct {
		id, code string
		expires  time.Time
	}{userID, code, expires})
	return nil
}

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	signErr error
	lastTTL time.Duration
}

func (f *fakeSigner) SignSession(p Principal, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.lastTTL = ttl
	return "token-for-" + p.UserID, nil
}

func (f *fakeSigner) VerifySession(token string) (Principal, error) {
	return Principal{}, errors.New("not implemented")
}

type fakeSender struct {
	mu      sync.Mutex
	sendErr error
	sent    []struct{ email, code string }
}

func (f *fakeSender) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, struct{ email, code string }{toEmail, code})
	return nil
}

func (f *fakeSender) lastSent(t *testing.T) struct{ email, code string } {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatalf("expected at least one sent email")
	}
	return f.sent[len(f.sent)-1]
}

/*
Service under test
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeSender) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	sender := &fakeSender{}

	svc := NewService(users, hasher, signer, sender, Config{
		AllowedDomains: []string{"mradvancellc.com", "nyu.edu", "nyulangone.org"},
	})
	return svc, users, hasher, signer, sender
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
