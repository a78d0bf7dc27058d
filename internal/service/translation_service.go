package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTranslationNotFound = errors.New("translation not found")
	ErrNotTranslator       = errors.New("only the translator can modify this translation")
)

type TranslationService struct {
	translationRepo repository.TranslationRepository
	bookRepo        repository.BookRepository
}

func NewTranslationService(translationRepo repository.TranslationRepository, bookRepo repository.BookRepository) *TranslationService {
	return &TranslationService{
		translationRepo: translationRepo,
		bookRepo:        bookRepo,
	}
}

type CreateTranslationInput struct {
	BookID         uint
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
}

type UpdateTranslationInput struct {
	OriginalText   *string
	TranslatedText *string
	SourceLanguage *string
	TargetLanguage *string
}

func (s *TranslationService) Create(ctx context.Context, translatorID uuid.UUID, input CreateTranslationInput) (*domain.Translation, error) {
	if err := s.ensureBook(ctx, input.BookID); err != nil {
		return nil, err
	}

	translation := &domain.Translation{
		BookID:         input.BookID,
		TranslatorID:   translatorID,
		OriginalText:   input.OriginalText,
		TranslatedText: input.TranslatedText,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
	}

	if err := s.translationRepo.Create(ctx, translation); err != nil {
		// The book can vanish between the check and the insert.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to create translation: %w", err)
	}

	return s.Get(ctx, translation.ID)
}

func (s *TranslationService) Get(ctx context.Context, id uint) (*domain.Translation, error) {
	translation, err := s.translationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}
	return translation, nil
}

func (s *TranslationService) List(ctx context.Context) ([]*domain.Translation, error) {
	return s.translationRepo.List(ctx)
}

func (s *TranslationService) ListByBook(ctx context.Context, bookID uint) ([]*domain.Translation, error) {
	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.translationRepo.ListByBook(ctx, bookID)
}

func (s *TranslationService) Update(ctx context.Context, userID uuid.UUID, id uint, input UpdateTranslationInput) (*domain.Translation, error) {
	translation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if translation.TranslatorID != userID {
		return nil, ErrNotTranslator
	}

	if input.OriginalText != nil {
		translation.OriginalText = *input.OriginalText
	}
	if input.TranslatedText != nil {
		translation.TranslatedText = *input.TranslatedText
	}
	if input.SourceLanguage != nil {
		translation.SourceLanguage = *input.SourceLanguage
	}
	if input.TargetLanguage != nil {
		translation.TargetLanguage = *input.TargetLanguage
	}

	if err := s.translationRepo.Update(ctx, translation); err != nil {
		return nil, fmt.Errorf("failed to update translation: %w", err)
	}

	return translation, nil
}

func (s *TranslationService) ensureBook(ctx context.Context, bookID uint) error {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}
