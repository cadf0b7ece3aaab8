package postgres

import "time"

type userRow struct {
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
