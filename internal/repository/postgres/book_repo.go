package postgres

import (
	"context"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *bookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).Preload("Owner").First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC, id DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Update writes the editable columns only; counts and owner are left alone.
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).
		Model(book).
		Select("title", "author", "description", "language", "cover_image", "tags", "updated_at").
		Updates(book).Error
}

func (r *bookRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Book{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
