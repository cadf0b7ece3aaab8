package http_handlers

import (
	"net/http"

	"github.com/mradvance/aihub/internal/application/account"
	"github.com/mradvance/aihub/internal/domain"
	"github.com/mradvance/aihub/internal/infrastructure/security"
	"github.com/mradvance/aihub/internal/logger"
	"github.com/mradvance/aihub/internal/metrics"
	"github.com/mradvance/aihub/internal/transport/http/dto"
	"github.com/mradvance/aihub/internal/transport/http/middleware"
	"github.com/mradvance/aihub/internal/transport/http/response"
)

type AccountHandler struct {
	svc           *account.Service
	secureCookies bool
}

func NewAccountHandler(svc *account.Service, secureCookies bool) *AccountHandler {
	return &AccountHandler{
		svc:           svc,
		secureCookies: secureCookies,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), account.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Password:  req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Bool("email_sent", res.EmailSent).
		Msg("user_registered")
	metrics.RecordRegistration()

	response.Created(w, dto.RegisterResponse{
		Message:              "Registration successful! Please check your email for a verification code.",
		User:                 dto.NewUserView(res.User),
		RequiresVerification: true,
		EmailSent:            res.EmailSent,
	})
}

func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.VerifyEmail(r.Context(), req.Email, req.VerificationCode)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("email_verified")
	metrics.RecordEmailVerification()

	response.OK(w, dto.VerifyEmailResponse{
		Message:  "Email verified successfully! You can now log in.",
		User:     dto.NewUserView(u),
		Verified: true,
	})
}

// ResendViaVerifyEmail handles PUT on the verify endpoint. It keeps the
// non-distinguishing error contract of its POST sibling.
func (h *AccountHandler) ResendViaVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if _, err := h.svc.RefreshPendingCode(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}
	metrics.RecordVerificationResend()

	response.OK(w, dto.ResendViaVerifyResponse{
		Message: "New verification code sent! Please check your email.",
		Resent:  true,
	})
}

func (h *AccountHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sent, err := h.svc.ResendCode(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	metrics.RecordVerificationResend()

	msg := "Verification email sent! Please check your email for a new verification code."
	if !sent {
		msg = "Verification code generated, but email delivery failed."
	}
	response.OK(w, dto.ResendVerificationResponse{
		Message:   msg,
		EmailSent: sent,
	})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") || domain.Is(err, "email_not_verified") {
			metrics.RecordLoginFailed()
		}
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.Principal.UserID).
		Msg("user_logged_in")
	metrics.RecordLogin()

	security.SetSessionCookie(w, res.Token, h.svc.SessionTTL(), h.secureCookies)

	response.OK(w, dto.LoginResponse{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresIn: res.ExpiresIn,
		User: dto.PrincipalView{
			ID:      res.Principal.UserID,
			Email:   res.Principal.Email,
			Name:    res.Principal.Name,
			Company: res.Principal.Company,
		},
	})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w, h.secureCookies)
	response.NoContent(w)
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrSessionInvalid())
		return
	}

	response.OK(w, dto.MeResponse{
		User: dto.PrincipalView{
			ID:      p.UserID,
			Email:   p.Email,
			Name:    p.Name,
			Company: p.Company,
		},
	})
}
