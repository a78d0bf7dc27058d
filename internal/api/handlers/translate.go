package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/service"
	"go.uber.org/zap"
)

type TranslateHandler struct {
	translateService *service.TranslateService
	log              *zap.Logger
}

func NewTranslateHandler(translateService *service.TranslateService, log *zap.Logger) *TranslateHandler {
	return &TranslateHandler{
		translateService: translateService,
		log:              log.Named("translate"),
	}
}

type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if !decode(w, r, nil, &req) {
		return
	}

	text, err := h.translateService.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		if errors.Is(err, service.ErrMissingTranslateInput) {
			respond.Error(w, http.StatusBadRequest, "Missing text or targetLanguage in request body")
			return
		}
		h.log.Error("translation failed", zap.String("targetLanguage", req.TargetLanguage), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Translation failed")
		return
	}

	respond.OK(w, TranslateResponse{TranslatedText: text})
}
