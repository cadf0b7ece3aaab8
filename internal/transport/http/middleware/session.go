package middleware

import (
	"net/http"
	"strings"

	"github.com/mradvance/aihub/internal/application/account"
	"github.com/mradvance/aihub/internal/domain"
	"github.com/mradvance/aihub/internal/infrastructure/security"
)

type SessionVerifier interface {
	VerifySession(token string) (account.Principal, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Session verifies the signed session token (HttpOnly cookie, or
// Authorization: Bearer for API clients) and injects the rehydrated
// principal into the request context. Every gated page sits behind this.
func Session(verifier SessionVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				writeErr(w, r, domain.ErrSessionMissing())
				return
			}

			p, err := verifier.VerifySession(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			if strings.TrimSpace(p.UserID) == "" {
				writeErr(w, r, domain.ErrSessionInvalid())
				return
			}

			ctx := WithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if tok, err := security.ReadSessionCookie(r); err == nil {
		return tok
	}
	return ""
}
