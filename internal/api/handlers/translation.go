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

type TranslationHandler struct {
	translationService *service.TranslationService
	validator          *validation.Validator
	log                *zap.Logger
}

func NewTranslationHandler(translationService *service.TranslationService, validator *validation.Validator, log *zap.Logger) *TranslationHandler {
	return &TranslationHandler{
		translationService: translationService,
		validator:          validator,
		log:                log.Named("translations"),
	}
}

type CreateTranslationRequest struct {
	BookID         uint   `json:"bookId" validate:"required"`
	OriginalText   string `json:"originalText" validate:"required"`
	TranslatedText string `json:"translatedText" validate:"required"`
	SourceLanguage string `json:"sourceLanguage" validate:"required,max=16"`
	TargetLanguage string `json:"targetLanguage" validate:"required,max=16"`
}

type UpdateTranslationRequest struct {
	OriginalText   *string `json:"originalText" validate:"omitnil,min=1"`
	TranslatedText *string `json:"translatedText" validate:"omitnil,min=1"`
	SourceLanguage *string `json:"sourceLanguage" validate:"omitnil,min=1,max=16"`
	TargetLanguage *string `json:"targetLanguage" validate:"omitnil,min=1,max=16"`
}

func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	translations, err := h.translationService.List(r.Context())
	if err != nil {
		h.log.Error("failed to list translations", zap.Error(err))
		respond.InternalError(w)
		return
	}

	respond.OK(w, toTranslationResponses(translations))
}

func (h *TranslationHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := urlID(r, "bookId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	translations, err := h.translationService.ListByBook(r.Context(), bookID)
	if err != nil {
		h.writeError(w, err, zap.Uint("bookId", bookID))
		return
	}

	respond.OK(w, toTranslationResponses(translations))
}

func (h *TranslationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid translation id")
		return
	}

	translation, err := h.translationService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, zap.Uint("translationId", id))
		return
	}

	respond.OK(w, toTranslationResponse(translation))
}

func (h *TranslationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTranslationRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	translation, err := h.translationService.Create(r.Context(), userID, service.CreateTranslationInput{
		BookID:         req.BookID,
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		h.writeError(w, err, zap.Uint("bookId", req.BookID), zap.Stringer("userId", userID))
		return
	}

	respond.Created(w, toTranslationResponse(translation))
}

func (h *TranslationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid translation id")
		return
	}

	var req UpdateTranslationRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	translation, err := h.translationService.Update(r.Context(), userID, id, service.UpdateTranslationInput{
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		h.writeError(w, err, zap.Uint("translationId", id), zap.Stringer("userId", userID))
		return
	}

	respond.OK(w, toTranslationResponse(translation))
}

func (h *TranslationHandler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		respond.Error(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, service.ErrTranslationNotFound):
		respond.Error(w, http.StatusNotFound, "Translation not found")
	case errors.Is(err, service.ErrNotTranslator):
		respond.Error(w, http.StatusForbidden, "Only the translator can modify this translation")
	default:
		h.log.Error("translation request failed", append(fields, zap.Error(err))...)
		respond.InternalError(w)
	}
}
