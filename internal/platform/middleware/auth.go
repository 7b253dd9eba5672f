package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"sift/pkg/secrets"
)

// TokenValidator defines the interface for validating service JWT tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*ServiceClaims, error)
}

// ServiceClaims represents the claims we expect from the token validator.
type ServiceClaims struct {
	ServiceID string
	JTI       string
}

type contextKeyServiceID struct{}

// ContextKeyServiceID is exported for use in handlers.
var ContextKeyServiceID = contextKeyServiceID{}

// GetServiceID retrieves the authenticated caller's service ID from the context.
// Empty when the request authenticated with an API key or when auth is disabled.
func GetServiceID(ctx context.Context) string {
	serviceID, ok := ctx.Value(ContextKeyServiceID).(string)
	if !ok {
		return ""
	}
	return serviceID
}

// RequireServiceAuth authenticates service-to-service callers. Two schemes are
// accepted: a Bearer JWT validated by the given validator, or an X-API-Key
// header verified against the configured bcrypt hash. Requests carrying
// neither are rejected with 401.
func RequireServiceAuth(validator TokenValidator, apiKeyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" && apiKeyHash != "" {
				if err := secrets.Verify(apiKey, apiKeyHash); err != nil {
					logger.WarnContext(ctx, "unauthorized access - api key mismatch",
						"request_id", requestID,
					)
					writeUnauthorized(w, "Invalid API key")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}

				ctx = context.WithValue(ctx, ContextKeyServiceID, claims.ServiceID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			logger.WarnContext(ctx, "unauthorized access - missing credentials",
				"request_id", requestID,
			)
			writeUnauthorized(w, "Missing Authorization or X-API-Key header")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
