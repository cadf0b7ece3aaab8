package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mradvance/aihub/internal/application/account"
	"github.com/mradvance/aihub/internal/domain"
)

type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignSession(p account.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:   p.Email,
		Name:    p.Name,
		Company: p.Company,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) VerifySession(token string) (account.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrSessionInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return account.Principal{}, domain.ErrSessionExpired()
		}
		return account.Principal{}, domain.ErrSessionInvalid()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return account.Principal{}, domain.ErrSessionInvalid()
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return account.Principal{}, domain.ErrSessionInvalid()
	}

	return account.Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Company: claims.Company,
	}, nil
}
