package repository

import (
	"context"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Upsert creates the user for email or refreshes its name and avatar.
	Upsert(ctx context.Context, email, name, avatar string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id uint) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type TranslationRepository interface {
	// Create inserts the translation and bumps its book's translation count.
	Create(ctx context.Context, translation *domain.Translation) error
	GetByID(ctx context.Context, id uint) (*domain.Translation, error)
	List(ctx context.Context) ([]*domain.Translation, error)
	ListByBook(ctx context.Context, bookID uint) ([]*domain.Translation, error)
	ListRecentByTranslator(ctx context.Context, translatorID uuid.UUID, limit int) ([]*domain.Translation, error)
	Update(ctx context.Context, translation *domain.Translation) error
	CountByTranslator(ctx context.Context, translatorID uuid.UUID) (int64, error)
}

type BookmarkRepository interface {
	// Create inserts the bookmark. A second bookmark for the same user and
	// target fails with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	GetByID(ctx context.Context, id uint) (*domain.Bookmark, error)
	GetByTarget(ctx context.Context, userID uuid.UUID, target domain.BookmarkTarget) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmark, error)
	Delete(ctx context.Context, bookmark *domain.Bookmark) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Repositories struct {
	User        UserRepository
	Book        BookRepository
	Translation TranslationRepository
	Bookmark    BookmarkRepository
}
