package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
)

func panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				panicErr := goerr.New("panic recovered",
					goerr.V("panic", fmt.Sprintf("%v", err)),
					goerr.V("stack", string(debug.Stack())),
					goerr.V("method", r.Method),
					goerr.V("path", r.URL.Path),
				)
				handleError(w, r, panicErr)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware verifies the bearer token and injects the claims into the
// request context. Websocket upgrades also pass the token via the
// Sec-WebSocket-Protocol escape hatch used by browser clients.
func authMiddleware(secret []byte, noAuth bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if noAuth {
				ctx := auth.WithClaims(r.Context(), &auth.Claims{UserID: "anonymous"})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := bearerToken(r)
			if token == "" {
				handleError(w, r, goerr.New("missing bearer token", goerr.T(errs.TagUnauthorized)))
				return
			}

			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				handleError(w, r, err)
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if p := r.Header.Get("Sec-WebSocket-Protocol"); strings.HasPrefix(p, "bearer, ") {
		return strings.TrimPrefix(p, "bearer, ")
	}
	return r.URL.Query().Get("token")
}
