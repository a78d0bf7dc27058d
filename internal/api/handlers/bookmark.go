package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/service"
	"go.uber.org/zap"
)

type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
	log             *zap.Logger
}

func NewBookmarkHandler(bookmarkService *service.BookmarkService, log *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		log:             log.Named("bookmarks"),
	}
}

type CreateBookmarkRequest struct {
	BookID        *uint `json:"bookId"`
	TranslationID *uint `json:"translationId"`
}

type BookmarkedBook struct {
	BookResponse
	BookmarkID   uint      `json:"bookmarkId"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

type BookmarkedTranslation struct {
	TranslationResponse
	BookmarkID   uint      `json:"bookmarkId"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

type BookmarksResponse struct {
	Translations []BookmarkedTranslation `json:"translations"`
	Books        []BookmarkedBook        `json:"books"`
}

type BookmarkConflictResponse struct {
	Error    string            `json:"error"`
	Bookmark *BookmarkResponse `json:"bookmark"`
}

type DeleteBookmarkResponse struct {
	Success   bool `json:"success"`
	DeletedID uint `json:"deletedId"`
}

type CheckBookmarkResponse struct {
	IsBookmarked bool              `json:"isBookmarked"`
	Bookmark     *BookmarkResponse `json:"bookmark"`
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookmarks, err := h.bookmarkService.List(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to list bookmarks", zap.Stringer("userId", userID), zap.Error(err))
		respond.InternalError(w)
		return
	}

	resp := BookmarksResponse{
		Translations: make([]BookmarkedTranslation, 0, len(bookmarks.Translations)),
		Books:        make([]BookmarkedBook, 0, len(bookmarks.Books)),
	}
	for _, b := range bookmarks.Translations {
		resp.Translations = append(resp.Translations, BookmarkedTranslation{
			TranslationResponse: toTranslationResponse(b.Translation),
			BookmarkID:          b.ID,
			BookmarkedAt:        b.CreatedAt,
		})
	}
	for _, b := range bookmarks.Books {
		resp.Books = append(resp.Books, BookmarkedBook{
			BookResponse: toBookResponse(b.Book),
			BookmarkID:   b.ID,
			BookmarkedAt: b.CreatedAt,
		})
	}

	respond.OK(w, resp)
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBookmarkRequest
	if !decode(w, r, nil, &req) {
		return
	}

	target, err := domain.ParseBookmarkTarget(req.BookID, req.TranslationID)
	if err != nil {
		h.writeTargetError(w, err)
		return
	}

	bookmark, err := h.bookmarkService.Create(r.Context(), userID, target)
	if err != nil {
		var dup *service.DuplicateBookmarkError
		switch {
		case errors.As(err, &dup):
			respond.JSON(w, http.StatusConflict, BookmarkConflictResponse{
				Error:    "Bookmark already exists",
				Bookmark: toBookmarkResponse(dup.Existing),
			})
		case errors.Is(err, service.ErrBookmarkTargetNotFound):
			respond.Error(w, http.StatusBadRequest, "Bookmark target does not exist")
		default:
			h.log.Error("failed to create bookmark",
				zap.Stringer("userId", userID),
				zap.String("targetKind", string(target.Kind)),
				zap.Uint("targetId", target.ID),
				zap.Error(err),
			)
			respond.InternalError(w)
		}
		return
	}

	respond.Created(w, toBookmarkResponse(bookmark))
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid bookmark id")
		return
	}

	if err := h.bookmarkService.Delete(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrBookmarkNotFound):
			respond.Error(w, http.StatusNotFound, "Bookmark not found")
		case errors.Is(err, service.ErrNotBookmarkOwner):
			respond.Error(w, http.StatusForbidden, "Not authorized to delete this bookmark")
		default:
			h.log.Error("failed to delete bookmark", zap.Stringer("userId", userID), zap.Uint("bookmarkId", id), zap.Error(err))
			respond.InternalError(w)
		}
		return
	}

	respond.OK(w, DeleteBookmarkResponse{Success: true, DeletedID: id})
}

// Check accepts bookId or translationId; translationId wins when both are set.
func (h *BookmarkHandler) Check(w http.ResponseWriter, r *http.Request) {
	translationID, err := optionalQueryID(r, "translationId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid translationId")
		return
	}
	if translationID != nil {
		h.check(w, r, domain.TranslationTarget(*translationID))
		return
	}

	bookID, err := optionalQueryID(r, "bookId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid bookId")
		return
	}
	if bookID != nil {
		h.check(w, r, domain.BookTarget(*bookID))
		return
	}

	respond.Error(w, http.StatusBadRequest, "Either translationId or bookId is required")
}

func (h *BookmarkHandler) CheckBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := optionalQueryID(r, "bookId")
	if err != nil || bookID == nil {
		respond.Error(w, http.StatusBadRequest, "bookId is required")
		return
	}
	h.check(w, r, domain.BookTarget(*bookID))
}

func (h *BookmarkHandler) CheckTranslation(w http.ResponseWriter, r *http.Request) {
	translationID, err := optionalQueryID(r, "translationId")
	if err != nil || translationID == nil {
		respond.Error(w, http.StatusBadRequest, "translationId is required")
		return
	}
	h.check(w, r, domain.TranslationTarget(*translationID))
}

func (h *BookmarkHandler) check(w http.ResponseWriter, r *http.Request, target domain.BookmarkTarget) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookmark, err := h.bookmarkService.Check(r.Context(), userID, target)
	if err != nil {
		h.log.Error("failed to check bookmark",
			zap.Stringer("userId", userID),
			zap.String("targetKind", string(target.Kind)),
			zap.Uint("targetId", target.ID),
			zap.Error(err),
		)
		respond.InternalError(w)
		return
	}

	respond.OK(w, CheckBookmarkResponse{
		IsBookmarked: bookmark != nil,
		Bookmark:     toBookmarkResponse(bookmark),
	})
}

func (h *BookmarkHandler) writeTargetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAmbiguousTarget):
		respond.Error(w, http.StatusBadRequest, "Cannot bookmark both translation and book")
	default:
		respond.Error(w, http.StatusBadRequest, "Either translationId or bookId is required")
	}
}
