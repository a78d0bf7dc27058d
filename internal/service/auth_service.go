package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/crowd-translate/internal/config"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrGoogleNotConfigured = errors.New("google client id not configured")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrUserNotFound        = errors.New("user not found")
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo repository.UserRepository
	verifier IdentityVerifier
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, verifier IdentityVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to issue and validate tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type LoginResult struct {
	User         *domain.User
	SessionToken string
}

// GoogleAuthURL builds the Google consent URL that sends the browser back to
// <origin>/auth/callback with an ID token in the fragment.
func (s *AuthService) GoogleAuthURL(origin string) (string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", ErrGoogleNotConfigured
	}

	oauthCfg := &oauth2.Config{
		ClientID:    s.cfg.GoogleClientID,
		RedirectURL: origin + "/auth/callback",
		Scopes:      []string{"openid", "email", "profile"},
		Endpoint:    google.Endpoint,
	}

	return oauthCfg.AuthCodeURL(uuid.NewString(),
		oauth2.SetAuthURLParam("response_type", "id_token token"),
		oauth2.SetAuthURLParam("nonce", uuid.NewString()),
	), nil
}

// LoginWithGoogle verifies a Google ID token, reconciles the user record and
// issues a session token for it.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, ErrGoogleNotConfigured
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Upsert(ctx, identity.Email, identity.Name, identity.Picture)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.IssueSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginResult{
		User:         user,
		SessionToken: token,
	}, nil
}

func (s *AuthService) IssueSessionToken(user *domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateSessionToken checks signature and expiry. Expired tokens yield
// ErrTokenExpired; every other failure yields ErrTokenInvalid.
func (s *AuthService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("%w: bad userId claim", ErrTokenInvalid)
	}

	return claims, nil
}

// Authenticate validates the token and loads the user it names. A user
// deleted after issuance yields ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.ValidateSessionToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, _ := uuid.Parse(claims.UserID)
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}
