package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthenticator struct {
	users map[string]*domain.User
	errs  map[string]error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, service.ErrTokenInvalid
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer prefix", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: middleware.ErrHeaderMissing},
		{name: "prefix only", header: "Bearer ", wantErr: middleware.ErrTokenMissing},
		{name: "lowercase prefix is a raw token", header: "bearer abc", want: "bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := middleware.ExtractToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuth(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "reader@example.com"}
	auth := &fakeAuthenticator{
		users: map[string]*domain.User{"good": user},
		errs: map[string]error{
			"expired": service.ErrTokenExpired,
			"stale":   service.ErrUserNotFound,
			"broken":  errors.New("connection refused"),
		},
	}

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetUserID(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := middleware.Auth(auth, zap.NewNop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authorization header missing"}`},
		{name: "valid bearer", header: "Bearer good", wantStatus: http.StatusNoContent},
		{name: "valid raw", header: "good", wantStatus: http.StatusNoContent},
		{name: "expired", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Token expired"}`},
		{name: "invalid", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token"}`},
		{name: "user removed", header: "Bearer stale", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"User not found"}`},
		{name: "storage failure", header: "Bearer broken", wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = uuid.Nil
			req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
				assert.Equal(t, uuid.Nil, seen)
			} else {
				assert.Equal(t, user.ID, seen)
			}
		})
	}
}

func TestGetUser_Empty(t *testing.T) {
	_, ok := middleware.GetUser(context.Background())
	assert.False(t, ok)

	_, ok = middleware.GetUserID(context.Background())
	assert.False(t, ok)
}
