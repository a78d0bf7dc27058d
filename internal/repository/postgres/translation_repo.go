package postgres

import (
	"context"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *translationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) Create(ctx context.Context, translation *domain.Translation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(translation).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Book{}).
			Where("id = ?", translation.BookID).
			UpdateColumn("translations_count", gorm.Expr("translations_count + 1")).Error
	})
}

func (r *translationRepository) GetByID(ctx context.Context, id uint) (*domain.Translation, error) {
	var translation domain.Translation
	err := r.withRelations(ctx).First(&translation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *translationRepository) List(ctx context.Context) ([]*domain.Translation, error) {
	var translations []*domain.Translation
	err := r.withRelations(ctx).Order("created_at DESC, id DESC").Find(&translations).Error
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *translationRepository) ListByBook(ctx context.Context, bookID uint) ([]*domain.Translation, error) {
	var translations []*domain.Translation
	err := r.withRelations(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Find(&translations).Error
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *translationRepository) ListRecentByTranslator(ctx context.Context, translatorID uuid.UUID, limit int) ([]*domain.Translation, error) {
	var translations []*domain.Translation
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("translator_id = ?", translatorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&translations).Error
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *translationRepository) Update(ctx context.Context, translation *domain.Translation) error {
	return r.db.WithContext(ctx).
		Model(translation).
		Select("original_text", "translated_text", "source_language", "target_language", "updated_at").
		Updates(translation).Error
}

func (r *translationRepository) CountByTranslator(ctx context.Context, translatorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Translation{}).Where("translator_id = ?", translatorID).Count(&count).Error
	return count, err
}

func (r *translationRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Book").Preload("Translator")
}
