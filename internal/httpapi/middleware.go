package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RanjithMathi/freshto-gateway/internal/auth"
	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

type ctxKey string

const (
	customerIDKey ctxKey = "customer_id"
	requestIDKey  ctxKey = "request_id"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionAuth resolves the bearer token against the persisted session and
// puts the customer ID on the context. The token also rides along on the
// context so downstream backend calls carry it.
func SessionAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			user, err := svc.CurrentUser(r.Context(), token)
			if errors.Is(err, auth.ErrNotLoggedIn) {
				respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
				return
			}
			if err != nil {
				respondError(w, http.StatusInternalServerError, "internal_error", "failed to load session")
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey, user.ID)
			ctx = backend.WithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func customerFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(customerIDKey).(int64); ok {
		return id
	}
	return 0
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
