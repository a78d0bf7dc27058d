package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/dom/crowd-translate/internal/validation"
	"go.uber.org/zap"
)

type BookHandler struct {
	bookService *service.BookService
	validator   *validation.Validator
	log         *zap.Logger
}

func NewBookHandler(bookService *service.BookService, validator *validation.Validator, log *zap.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		validator:   validator,
		log:         log.Named("books"),
	}
}

type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Author      string   `json:"author" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Language    string   `json:"language" validate:"max=16"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"max=20,dive,required,max=50"`
}

// UpdateBookRequest fields left out of the body are not changed.
type UpdateBookRequest struct {
	Title       *string  `json:"title" validate:"omitnil,min=1,max=255"`
	Author      *string  `json:"author" validate:"omitnil,min=1,max=255"`
	Description *string  `json:"description" validate:"omitnil,max=5000"`
	Language    *string  `json:"language" validate:"omitnil,max=16"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		h.log.Error("failed to list books", zap.Error(err))
		respond.InternalError(w)
		return
	}

	respond.OK(w, toBookResponses(books))
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, zap.Uint("bookId", id))
		return
	}

	respond.OK(w, toBookResponse(book))
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBookRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	book, err := h.bookService.Create(r.Context(), userID, service.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Language:    req.Language,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
	})
	if err != nil {
		h.writeError(w, err, zap.Stringer("userId", userID))
		return
	}

	respond.Created(w, toBookResponse(book))
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	var req UpdateBookRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	book, err := h.bookService.Update(r.Context(), userID, id, service.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Language:    req.Language,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
	})
	if err != nil {
		h.writeError(w, err, zap.Uint("bookId", id), zap.Stringer("userId", userID))
		return
	}

	respond.OK(w, toBookResponse(book))
}

func (h *BookHandler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		respond.Error(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, service.ErrNotBookOwner):
		respond.Error(w, http.StatusForbidden, "Only the book owner can modify it")
	default:
		h.log.Error("book request failed", append(fields, zap.Error(err))...)
		respond.InternalError(w)
	}
}
