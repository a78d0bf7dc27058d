package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
	log         *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, frontendURL string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
		log:         log.Named("auth"),
	}
}

type GoogleURLResponse struct {
	AuthURL string `json:"authUrl"`
}

type ValidateTokenRequest struct {
	IDToken string `json:"idToken"`
}

type ValidateTokenResponse struct {
	Success      bool         `json:"success"`
	User         UserResponse `json:"user"`
	SessionToken string       `json:"sessionToken"`
}

type AuthFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type MeResponse struct {
	UserResponse
	CreatedAt time.Time `json:"createdAt"`
}

func (h *AuthHandler) GoogleURL(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.authService.GoogleAuthURL(h.requestOrigin(r))
	if err != nil {
		h.log.Error("failed to build google auth url", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to generate auth URL")
		return
	}

	respond.OK(w, GoogleURLResponse{AuthURL: authURL})
}

// requestOrigin picks the frontend origin the consent screen redirects back to.
func (h *AuthHandler) requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	if referer := r.Header.Get("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	return h.frontendURL
}

func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req ValidateTokenRequest
	if !decode(w, r, nil, &req) {
		return
	}

	if req.IDToken == "" {
		respond.Error(w, http.StatusBadRequest, "ID token is required")
		return
	}

	result, err := h.authService.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			h.log.Info("rejected id token", zap.Error(err))
			respond.JSON(w, http.StatusUnauthorized, AuthFailureResponse{
				Success: false,
				Error:   "Invalid token or authentication failed",
			})
			return
		}
		h.log.Error("google login failed", zap.Error(err))
		respond.InternalError(w)
		return
	}

	respond.OK(w, ValidateTokenResponse{
		Success:      true,
		User:         toUserResponse(result.User),
		SessionToken: result.SessionToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respond.OK(w, MeResponse{
		UserResponse: toUserResponse(user),
		CreatedAt:    user.CreatedAt,
	})
}
