package dto

import (
	"time"

	"github.com/mradvance/aihub/internal/domain"
)

// UserView is the sanitized account representation: no password hash, no
// verification code.
type UserView struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Company       string    `json:"company"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Company:       u.Company,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type RegisterResponse struct {
	Message              string   `json:"message"`
	User                 UserView `json:"user"`
	RequiresVerification bool     `json:"requiresVerification"`
	EmailSent            bool     `json:"emailSent"`
}

type VerifyEmailResponse struct {
	Message  string   `json:"message"`
	User     UserView `json:"user"`
	Verified bool     `json:"verified"`
}

type ResendViaVerifyResponse struct {
	Message string `json:"message"`
	Resent  bool   `json:"resent"`
}

type ResendVerificationResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// PrincipalView mirrors the session principal.
type PrincipalView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"tokenType"`
	ExpiresIn int64         `json:"expiresIn"`
	User      PrincipalView `json:"user"`
}

type MeResponse struct {
	User PrincipalView `json:"user"`
}
