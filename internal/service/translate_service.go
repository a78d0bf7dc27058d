package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/option"
	translatev3 "google.golang.org/api/translate/v3"
)

var (
	ErrTranslatorNotConfigured = errors.New("translation project not configured")
	ErrEmptyTranslation        = errors.New("translation returned no result")
	ErrMissingTranslateInput   = errors.New("text and target language are required")
)

// TextTranslator machine-translates a single piece of plain text.
type TextTranslator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// GoogleTranslator calls the Cloud Translation v3 API with application
// default credentials. The API client is built on first use.
type GoogleTranslator struct {
	projectID string
	location  string
	opts      []option.ClientOption

	once    sync.Once
	svc     *translatev3.Service
	initErr error
}

func NewGoogleTranslator(projectID, location string, opts ...option.ClientOption) *GoogleTranslator {
	if location == "" {
		location = "global"
	}
	return &GoogleTranslator{
		projectID: projectID,
		location:  location,
		opts:      opts,
	}
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if t.projectID == "" {
		return "", ErrTranslatorNotConfigured
	}

	svc, err := t.service()
	if err != nil {
		return "", fmt.Errorf("failed to create translation client: %w", err)
	}

	parent := fmt.Sprintf("projects/%s/locations/%s", t.projectID, t.location)
	resp, err := svc.Projects.Locations.TranslateText(parent, &translatev3.TranslateTextRequest{
		Contents:           []string{text},
		MimeType:           "text/plain",
		TargetLanguageCode: targetLanguage,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}

	if len(resp.Translations) == 0 {
		return "", ErrEmptyTranslation
	}

	return resp.Translations[0].TranslatedText, nil
}

func (t *GoogleTranslator) service() (*translatev3.Service, error) {
	t.once.Do(func() {
		t.svc, t.initErr = translatev3.NewService(context.Background(), t.opts...)
	})
	return t.svc, t.initErr
}

type TranslateService struct {
	translator TextTranslator
}

func NewTranslateService(translator TextTranslator) *TranslateService {
	return &TranslateService{translator: translator}
}

func (s *TranslateService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(targetLanguage) == "" {
		return "", ErrMissingTranslateInput
	}
	return s.translator.Translate(ctx, text, targetLanguage)
}
