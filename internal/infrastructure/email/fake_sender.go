package email

import (
	"context"

	"github.com/rs/zerolog"
)

// FakeSender logs the code instead of delivering it. Used when no SMTP host
// is configured, so DB-backed dev environments still surface the code.
type FakeSender struct {
	lg zerolog.Logger
}

func NewFakeSender(lg zerolog.Logger) *FakeSender {
	return &FakeSender{
		lg: lg.With().Str("component", "fake_sender").Logger(),
	}
}

func (s *FakeSender) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	s.lg.Info().
		Str("to", toEmail).
		Str("code", code).
		Msg("FAKE send verification code")
	return nil
}
