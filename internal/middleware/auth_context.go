package middleware

import (
	"context"
	"net/http"
	"strings"

	"symptom-tracker/internal/ports/auth"
	"symptom-tracker/internal/session"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	sessionKey ctxKey = "session"
)

// DebugUserHeader es el header del modo dev.
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
// - Si verifier == nil => modo dev: X-Debug-User-ID abre (o reusa) la sesión "debug:<uid>".
// - Si verifier != nil y viene Bearer token => busca la sesión del token; si no
//   existe y el token no fue revocado, Verify() y la abre en forma lazy.
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar user sin verifier
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{UserID: uid}
				next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims, debugSession(sessions, claims))))
				return
			}

			// Verifier mode
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil {
				if sess, ok := sessions.Lookup(token); ok {
					next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), sess.Claims(), sess)))
					return
				}
				if sessions.IsRevoked(token) {
					next.ServeHTTP(w, r)
					return
				}
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				// No cortamos aquí para no acoplar. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			var sess *session.Session
			if sessions != nil {
				sess, err = sessions.Resume(token, claims)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims, sess)))
		})
	}
}

// debugSession reusa la sesión dev del usuario; sign-out solo la vacía.
func debugSession(sessions *session.Manager, claims auth.Claims) *session.Session {
	if sessions == nil {
		return nil
	}
	key := "debug:" + claims.UserID
	if sess, ok := sessions.Lookup(key); ok {
		return sess
	}
	sess, err := sessions.Begin(key, claims)
	if err != nil {
		return nil
	}
	return sess
}

func withIdentity(ctx context.Context, claims auth.Claims, sess *session.Session) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	if sess != nil {
		ctx = context.WithValue(ctx, sessionKey, sess)
	}
	return ctx
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// GetSession devuelve la sesión del request (perfil cacheado, token).
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	if !ok || s == nil || strings.TrimSpace(s.UserID) == "" {
		return nil, false
	}
	return s, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
