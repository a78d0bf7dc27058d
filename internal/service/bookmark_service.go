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
	ErrBookmarkNotFound       = errors.New("bookmark not found")
	ErrNotBookmarkOwner       = errors.New("not authorized to delete this bookmark")
	ErrBookmarkExists         = errors.New("bookmark already exists")
	ErrBookmarkTargetNotFound = errors.New("bookmark target does not exist")
)

// DuplicateBookmarkError reports a create for a (user, target) pair that is
// already bookmarked. It matches ErrBookmarkExists.
type DuplicateBookmarkError struct {
	Existing *domain.Bookmark
}

func (e *DuplicateBookmarkError) Error() string {
	return ErrBookmarkExists.Error()
}

func (e *DuplicateBookmarkError) Is(target error) bool {
	return target == ErrBookmarkExists
}

type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository) *BookmarkService {
	return &BookmarkService{bookmarkRepo: bookmarkRepo}
}

// UserBookmarks splits a user's bookmarks by target kind, newest first.
type UserBookmarks struct {
	Books        []*domain.Bookmark
	Translations []*domain.Bookmark
}

func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) (*UserBookmarks, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &UserBookmarks{
		Books:        make([]*domain.Bookmark, 0),
		Translations: make([]*domain.Bookmark, 0),
	}
	for _, b := range bookmarks {
		target, err := b.Target()
		if err != nil {
			return nil, fmt.Errorf("bookmark %d: %w", b.ID, err)
		}

		switch target.Kind {
		case domain.TargetBook:
			if b.Book != nil {
				result.Books = append(result.Books, b)
			}
		case domain.TargetTranslation:
			if b.Translation != nil {
				result.Translations = append(result.Translations, b)
			}
		}
	}

	return result, nil
}

// Create bookmarks target for the user. The unique index decides conflicts;
// on conflict the existing bookmark is returned inside a DuplicateBookmarkError.
func (s *BookmarkService) Create(ctx context.Context, userID uuid.UUID, target domain.BookmarkTarget) (*domain.Bookmark, error) {
	bookmark, err := domain.NewBookmark(userID, target)
	if err != nil {
		return nil, err
	}

	err = s.bookmarkRepo.Create(ctx, bookmark)
	switch {
	case err == nil:
		return bookmark, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		existing, getErr := s.bookmarkRepo.GetByTarget(ctx, userID, target)
		if getErr != nil {
			return nil, fmt.Errorf("failed to load existing bookmark: %w", getErr)
		}
		return nil, &DuplicateBookmarkError{Existing: existing}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return nil, ErrBookmarkTargetNotFound
	default:
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
}

// Delete removes a bookmark owned by userID.
func (s *BookmarkService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}

	if bookmark.UserID != userID {
		return ErrNotBookmarkOwner
	}

	if err := s.bookmarkRepo.Delete(ctx, bookmark); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return nil
}

// Check returns the user's bookmark on target, or nil when there is none.
func (s *BookmarkService) Check(ctx context.Context, userID uuid.UUID, target domain.BookmarkTarget) (*domain.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.GetByTarget(ctx, userID, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bookmark, nil
}
