package domain

import "time"

// User is a portal account. While EmailVerified is false, VerificationCode
// and VerificationExpires are set and the account cannot log in. Verification
// clears both fields permanently.
type User struct {
	ID                  string
	Email               string
	Name                string
	Company             string
	PasswordHash        string
	EmailVerified       bool
	VerificationCode    *string
	VerificationExpires *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
