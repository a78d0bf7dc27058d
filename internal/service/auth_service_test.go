package service_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository/postgres"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/dom/crowd-translate/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAuthService_SessionTokenRoundTrip(t *testing.T) {
	cfg := testutil.TestConfig()
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	authService := service.NewAuthService(nil, nil, cfg).WithClock(fixedClock(issuedAt))

	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}

	token, err := authService.IssueSessionToken(user)
	require.NoError(t, err)

	claims, err := authService.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issuedAt.Add(cfg.SessionTTL()).Unix(), claims.ExpiresAt.Unix())
}

func TestAuthService_ValidateSessionToken(t *testing.T) {
	cfg := testutil.TestConfig()
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := service.NewAuthService(nil, nil, cfg).WithClock(fixedClock(issuedAt))

	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	valid, err := issuer.IssueSessionToken(user)
	require.NoError(t, err)

	otherCfg := testutil.TestConfig()
	otherCfg.JWTSecret = "a-different-secret"
	forged, err := service.NewAuthService(nil, nil, otherCfg).WithClock(fixedClock(issuedAt)).IssueSessionToken(user)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": user.ID.String(),
		"exp":    issuedAt.Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	noUserID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ada@example.com",
		"exp":   issuedAt.Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.String(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	ttl := cfg.SessionTTL()

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "fresh token", token: valid, now: issuedAt.Add(time.Minute)},
		{name: "just before expiry", token: valid, now: issuedAt.Add(ttl - time.Second)},
		{name: "at expiry", token: valid, now: issuedAt.Add(ttl), wantErr: service.ErrTokenExpired},
		{name: "after expiry", token: valid, now: issuedAt.Add(ttl + time.Hour), wantErr: service.ErrTokenExpired},
		{name: "wrong secret", token: forged, now: issuedAt, wantErr: service.ErrTokenInvalid},
		{name: "wrong secret and expired", token: forged, now: issuedAt.Add(ttl + time.Hour), wantErr: service.ErrTokenInvalid},
		{name: "wrong algorithm", token: wrongAlg, now: issuedAt, wantErr: service.ErrTokenInvalid},
		{name: "missing user id", token: noUserID, now: issuedAt, wantErr: service.ErrTokenInvalid},
		{name: "missing expiry", token: noExpiry, now: issuedAt, wantErr: service.ErrTokenInvalid},
		{name: "garbage", token: "not.a.token", now: issuedAt, wantErr: service.ErrTokenInvalid},
		{name: "empty", token: "", now: issuedAt, wantErr: service.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := service.NewAuthService(nil, nil, cfg).WithClock(fixedClock(tt.now))

			claims, err := validator.ValidateSessionToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr == service.ErrTokenInvalid {
					assert.NotErrorIs(t, err, service.ErrTokenExpired)
				}
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), claims.UserID)
		})
	}
}

func TestAuthService_GoogleAuthURL(t *testing.T) {
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(nil, nil, cfg)

	raw, err := authService.GoogleAuthURL("https://books.example.com")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, cfg.GoogleClientID, q.Get("client_id"))
	assert.Equal(t, "https://books.example.com/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "id_token token", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.NotEmpty(t, q.Get("nonce"))
	assert.NotEmpty(t, q.Get("state"))

	cfg.GoogleClientID = ""
	_, err = authService.GoogleAuthURL("https://books.example.com")
	assert.ErrorIs(t, err, service.ErrGoogleNotConfigured)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	verifier := testutil.NewFakeVerifier()
	authService := service.NewAuthService(repos.User, verifier, cfg)
	ctx := context.Background()

	verifier.Register("first-login", service.IdentityClaims{
		Subject: "g-1", Email: "grace@example.com", Name: "Grace", Picture: "a.png",
	})
	verifier.Register("second-login", service.IdentityClaims{
		Subject: "g-1", Email: "grace@example.com", Name: "Grace Hopper", Picture: "b.png",
	})

	first, err := authService.LoginWithGoogle(ctx, "first-login")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", first.User.Email)
	assert.NotEmpty(t, first.SessionToken)

	second, err := authService.LoginWithGoogle(ctx, "second-login")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Grace Hopper", second.User.Name)
	assert.Equal(t, "b.png", second.User.Avatar)

	claims, err := authService.ValidateSessionToken(second.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, second.User.ID.String(), claims.UserID)

	_, err = authService.LoginWithGoogle(ctx, "forged")
	assert.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestAuthService_Authenticate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, nil, cfg)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	token, err := authService.IssueSessionToken(user)
	require.NoError(t, err)

	got, err := authService.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, testDB.DB.Delete(&domain.User{}, "id = ?", user.ID).Error)

	_, err = authService.Authenticate(ctx, token)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = authService.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}
