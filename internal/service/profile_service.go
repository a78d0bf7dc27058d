package service

import (
	"context"
	"errors"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentTranslationsLimit = 5

type ProfileService struct {
	userRepo        repository.UserRepository
	bookRepo        repository.BookRepository
	translationRepo repository.TranslationRepository
	bookmarkRepo    repository.BookmarkRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	translationRepo repository.TranslationRepository,
	bookmarkRepo repository.BookmarkRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:        userRepo,
		bookRepo:        bookRepo,
		translationRepo: translationRepo,
		bookmarkRepo:    bookmarkRepo,
	}
}

type ProfileStats struct {
	TranslationsCount int64
	BooksCount        int64
	BookmarksCount    int64
}

// UserProfile is a user with activity counts and the latest translations.
type UserProfile struct {
	User               *domain.User
	Stats              ProfileStats
	RecentTranslations []*domain.Translation
}

// GetUserProfile returns the owner's view, including the bookmark count.
func (s *ProfileService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	return s.load(ctx, userID, true)
}

// GetPublicProfile returns the view anyone may see. Bookmarks are not counted.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	return s.load(ctx, userID, false)
}

func (s *ProfileService) load(ctx context.Context, userID uuid.UUID, withBookmarks bool) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &UserProfile{User: user}

	if profile.Stats.TranslationsCount, err = s.translationRepo.CountByTranslator(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Stats.BooksCount, err = s.bookRepo.CountByOwner(ctx, userID); err != nil {
		return nil, err
	}
	if withBookmarks {
		if profile.Stats.BookmarksCount, err = s.bookmarkRepo.CountByUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	profile.RecentTranslations, err = s.translationRepo.ListRecentByTranslator(ctx, userID, recentTranslationsLimit)
	if err != nil {
		return nil, err
	}

	return profile, nil
}
