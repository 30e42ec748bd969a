package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const callerKey ctxKey = "caller"

func CallerFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(callerKey)
	id, ok := v.(Identity)
	return id, ok
}

// Resolver turns a token subject into a live identity. Resolving per
// request means role and enabled changes take effect immediately.
type Resolver func(ctx context.Context, email string) (Identity, error)

func RequireAuth(jwtSvc *JWT, resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			email, err := jwtSvc.Verify(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			caller, err := resolve(r.Context(), email)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !caller.Enabled {
				http.Error(w, "user is blocked or disabled", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
