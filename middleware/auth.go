package middleware

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"careerboard/internal/access"
	"careerboard/internal/user/model"
	"careerboard/pkg/logger"
	"careerboard/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const CallerKey contextKey = "caller"

// UserFinder loads the account behind a token subject.
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AuthMiddleware validates the HMAC-signed JWT, loads the user named by its
// sub claim and stores the resulting access.Caller in the request context.
func AuthMiddleware(users UserFinder, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Browsers cannot set headers on WebSocket handshakes, so the
			// token may also arrive in the query string.
			tokenString := r.URL.Query().Get("token")
			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if tokenString == "" {
				response.Error(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Sugar.Infof("Invalid token: %v", err)
				response.Error(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(w, http.StatusNotFound, "User not found")
				return
			} else if err != nil {
				response.InternalError(w, "Failed to load current user", err)
				return
			}
			if !user.IsActive {
				response.Error(w, http.StatusBadRequest, "Inactive user")
				return
			}

			caller := access.Caller{ID: user.ID, IsSuperuser: user.IsSuperuser}
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(ctx context.Context) (access.Caller, bool) {
	c, ok := ctx.Value(CallerKey).(access.Caller)
	return c, ok
}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c access.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, c)
}
