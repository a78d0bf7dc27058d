package postgres

import (
	"context"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *bookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create relies on the (user, target) unique indexes; there is no pre-check.
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bookmark).Error; err != nil {
			return err
		}
		return adjustBookmarksCount(tx, bookmark, 1)
	})
}

func (r *bookmarkRepository) GetByID(ctx context.Context, id uint) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	err := r.db.WithContext(ctx).First(&bookmark, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) GetByTarget(ctx context.Context, userID uuid.UUID, target domain.BookmarkTarget) (*domain.Bookmark, error) {
	column := target.Column()
	if column == "" {
		return nil, domain.ErrUnknownTarget
	}

	var bookmark domain.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(column+" = ?", target.ID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmark, error) {
	var bookmarks []*domain.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Book.Owner").
		Preload("Translation.Book").
		Preload("Translation.Translator").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, bookmark *domain.Bookmark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Bookmark{}, "id = ?", bookmark.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return adjustBookmarksCount(tx, bookmark, -1)
	})
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func adjustBookmarksCount(tx *gorm.DB, bookmark *domain.Bookmark, delta int) error {
	if bookmark.BookID == nil {
		return nil
	}
	return tx.Model(&domain.Book{}).
		Where("id = ?", *bookmark.BookID).
		UpdateColumn("bookmarks_count", gorm.Expr("GREATEST(bookmarks_count + ?, 0)", delta)).Error
}
