package service

import (
	"github.com/dom/crowd-translate/internal/config"
	"github.com/dom/crowd-translate/internal/repository"
)

type Services struct {
	Auth        *AuthService
	Book        *BookService
	Translation *TranslationService
	Bookmark    *BookmarkService
	Profile     *ProfileService
	Translate   *TranslateService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, verifier IdentityVerifier, translator TextTranslator) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, verifier, cfg),
		Book:        NewBookService(repos.Book),
		Translation: NewTranslationService(repos.Translation, repos.Book),
		Bookmark:    NewBookmarkService(repos.Bookmark),
		Profile:     NewProfileService(repos.User, repos.Book, repos.Translation, repos.Bookmark),
		Translate:   NewTranslateService(translator),
	}
}
