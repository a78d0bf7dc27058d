package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

var (
	ErrHeaderMissing = errors.New("authorization header missing")
	ErrTokenMissing  = errors.New("token missing")
)

// Authenticator resolves a session token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// ExtractToken reads the session token from an Authorization header value.
// "Bearer <token>" is the documented form; a bare token without the prefix
// is accepted as well.
func ExtractToken(header string) (string, error) {
	if header == "" {
		return "", ErrHeaderMissing
	}

	token := header
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		token = after
	}
	token = strings.TrimSpace(token)

	if token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

func Auth(auth Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	log = log.Named("auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Debug("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, ErrHeaderMissing) {
					respond.Error(w, http.StatusUnauthorized, "Authorization header missing")
				} else {
					respond.Error(w, http.StatusUnauthorized, "Token missing")
				}
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrTokenExpired):
					respond.Error(w, http.StatusUnauthorized, "Token expired")
				case errors.Is(err, service.ErrTokenInvalid):
					log.Debug("invalid token", zap.Error(err))
					respond.Error(w, http.StatusUnauthorized, "Invalid token")
				case errors.Is(err, service.ErrUserNotFound):
					respond.Error(w, http.StatusUnauthorized, "User not found")
				default:
					log.Error("authentication failed", zap.Error(err))
					respond.InternalError(w)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
