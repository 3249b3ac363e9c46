package middleware

import (
	"net/http"
	"strings"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/auth"
)

// RequireAuthMiddleware devolve um middleware compatível com mux
// (func(http.Handler) http.Handler) que exige um access token válido.
func RequireAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(secret, next)
	}
}

func RequireAuth(secret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r)
		if raw == "" {
			http.Error(w, `{"erro":"token ausente ou inválido"}`, http.StatusUnauthorized)
			return
		}
		claims, err := auth.ParseJWT(secret, raw)
		if err != nil {
			http.Error(w, `{"erro":"token inválido"}`, http.StatusUnauthorized)
			return
		}
		if claims.TokenType != auth.TokenAccess {
			http.Error(w, `{"erro":"token inválido"}`, http.StatusUnauthorized)
			return
		}
		r = r.WithContext(auth.WithClaims(r.Context(), claims))
		next.ServeHTTP(w, r)
	})
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
