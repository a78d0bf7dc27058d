package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		log:            log.Named("profile"),
	}
}

type RecentTranslationBook struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type RecentTranslation struct {
	ID             uint                   `json:"id"`
	OriginalText   string                 `json:"originalText"`
	TranslatedText string                 `json:"translatedText"`
	SourceLanguage string                 `json:"sourceLanguage"`
	TargetLanguage string                 `json:"targetLanguage"`
	CreatedAt      time.Time              `json:"createdAt"`
	Book           *RecentTranslationBook `json:"book"`
}

type ProfileUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProfileStats struct {
	TranslationsCount int64 `json:"translationsCount"`
	BooksCount        int64 `json:"booksCount"`
	BookmarksCount    int64 `json:"bookmarksCount"`
}

// ProfileResponse is the signed-in user's own profile.
type ProfileResponse struct {
	User               ProfileUser         `json:"user"`
	Stats              ProfileStats        `json:"stats"`
	RecentTranslations []RecentTranslation `json:"recentTranslations"`
}

// PublicProfileUser has no email field at all.
type PublicProfileUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

type PublicProfileStats struct {
	TranslationsCount int64 `json:"translationsCount"`
	BooksCount        int64 `json:"booksCount"`
}

type PublicProfileResponse struct {
	User               PublicProfileUser   `json:"user"`
	Stats              PublicProfileStats  `json:"stats"`
	RecentTranslations []RecentTranslation `json:"recentTranslations"`
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, userID)
		return
	}

	respond.OK(w, ProfileResponse{
		User: ProfileUser{
			ID:        profile.User.ID.String(),
			Name:      profile.User.Name,
			Email:     profile.User.Email,
			Avatar:    profile.User.Avatar,
			CreatedAt: profile.User.CreatedAt,
		},
		Stats: ProfileStats{
			TranslationsCount: profile.Stats.TranslationsCount,
			BooksCount:        profile.Stats.BooksCount,
			BookmarksCount:    profile.Stats.BookmarksCount,
		},
		RecentTranslations: toRecentTranslations(profile.RecentTranslations),
	})
}

// GetPublicProfile returns any user's profile without private fields.
func (h *ProfileHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	profile, err := h.profileService.GetPublicProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, userID)
		return
	}

	respond.OK(w, PublicProfileResponse{
		User: PublicProfileUser{
			ID:        profile.User.ID.String(),
			Name:      profile.User.Name,
			Avatar:    profile.User.Avatar,
			CreatedAt: profile.User.CreatedAt,
		},
		Stats: PublicProfileStats{
			TranslationsCount: profile.Stats.TranslationsCount,
			BooksCount:        profile.Stats.BooksCount,
		},
		RecentTranslations: toRecentTranslations(profile.RecentTranslations),
	})
}

func (h *ProfileHandler) writeError(w http.ResponseWriter, err error, userID uuid.UUID) {
	if errors.Is(err, service.ErrUserNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	h.log.Error("failed to load profile", zap.Stringer("userId", userID), zap.Error(err))
	respond.InternalError(w)
}

func toRecentTranslations(translations []*domain.Translation) []RecentTranslation {
	resp := make([]RecentTranslation, 0, len(translations))
	for _, t := range translations {
		entry := RecentTranslation{
			ID:             t.ID,
			OriginalText:   t.OriginalText,
			TranslatedText: t.TranslatedText,
			SourceLanguage: t.SourceLanguage,
			TargetLanguage: t.TargetLanguage,
			CreatedAt:      t.CreatedAt,
		}
		if t.Book != nil {
			entry.Book = &RecentTranslationBook{ID: t.Book.ID, Title: t.Book.Title}
		}
		resp = append(resp, entry)
	}
	return resp
}
