package email

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

type SMTPSender struct {
	lg zerolog.Logger

	host     string
	port     int
	user     string
	pass     string
	from     string
	insecure bool

	timeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Insecure bool
}

func NewSMTPSender(cfg SMTPConfig, lg zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		lg:       lg.With().Str("component", "smtp_sender").Logger(),
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.Username,
		pass:     cfg.Password,
		from:     cfg.From,
		insecure: cfg.Insecure,
		timeout:  cfg.Timeout,
	}
}

func (s *SMTPSender) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	subject := "Verify your Mr. Advance AI Hub account"
	text := fmt.Sprintf(`Welcome to Mr. Advance AI Hub!

Your verification code is: %s

This code will expire in 24 hours.

Enter this code on the verification page to complete your registration.
`, code)
	return s.send(ctx, toEmail, subject, text, renderCodeHTML(code))
}

func (s *SMTPSender) send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)

	// Text fallback + HTML alternative
	m.SetBodyString(mail.TypeTextPlain, textBody)
	m.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	tlsPolicy := mail.TLSMandatory
	if s.insecure {
		tlsPolicy = mail.TLSOpportunistic
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(tlsPolicy),
	}
	if s.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(s.user), mail.WithPassword(s.pass))
	}

	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}

	s.lg.Info().Str("host", s.host).Int("port", s.port).Str("to", to).Str("subject", subject).Msg("attempting smtp send")
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		s.lg.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return err
	}

	s.lg.Info().Str("to", to).Msg("smtp send ok")
	return nil
}

func renderCodeHTML(code string) string {
	escCode := html.EscapeString(code)

	// very simple inline HTML (works in Gmail)
	return `<!doctype html>
<html>
  <body style="font-family:Arial,Helvetica,sans-serif; line-height:1.4; max-width:600px; margin:0 auto;">
    <h2 style="color:#333;">Welcome to Mr. Advance AI Hub!</h2>
    <p>Thank you for registering. Please verify your email address to complete your registration.</p>

    <div style="background-color:#f4f4f4; padding:20px; border-radius:5px; text-align:center; margin:20px 0;">
      <h3 style="color:#333; margin:0;">Your Verification Code:</h3>
      <h1 style="color:#007bff; font-size:32px; margin:10px 0; letter-spacing:3px;">` + escCode + `</h1>
    </div>

    <p>This code will expire in 24 hours.</p>
    <p>If you didn't create this account, please ignore this email.</p>

    <hr style="border:none; border-top:1px solid #eee; margin:30px 0;"/>
    <p style="color:#888; font-size:12px;">This email was sent from Mr. Advance AI Hub</p>
  </body>
</html>`
}
