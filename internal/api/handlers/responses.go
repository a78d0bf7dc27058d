package handlers

import (
	"time"

	"github.com/dom/crowd-translate/internal/domain"
)

type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PersonSummary identifies a book owner or translator without exposing an email.
type PersonSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type BookSummary struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type BookResponse struct {
	ID                uint           `json:"id"`
	Title             string         `json:"title"`
	Author            string         `json:"author"`
	Description       string         `json:"description"`
	Language          string         `json:"language"`
	CoverImage        string         `json:"coverImage"`
	Tags              []string       `json:"tags"`
	OwnerID           string         `json:"ownerId"`
	Owner             *PersonSummary `json:"owner,omitempty"`
	TranslationsCount int            `json:"translationsCount"`
	BookmarksCount    int            `json:"bookmarksCount"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

type TranslationResponse struct {
	ID             uint           `json:"id"`
	BookID         uint           `json:"bookId"`
	TranslatorID   string         `json:"translatorId"`
	OriginalText   string         `json:"originalText"`
	TranslatedText string         `json:"translatedText"`
	SourceLanguage string         `json:"sourceLanguage"`
	TargetLanguage string         `json:"targetLanguage"`
	Book           *BookSummary   `json:"book,omitempty"`
	Translator     *PersonSummary `json:"translator,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type BookmarkResponse struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"userId"`
	BookID        *uint     `json:"bookId"`
	TranslationID *uint     `json:"translationId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:     u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}

func toPersonSummary(u *domain.User) *PersonSummary {
	if u == nil {
		return nil
	}
	return &PersonSummary{
		ID:     u.ID.String(),
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}

func toBookSummary(b *domain.Book) *BookSummary {
	if b == nil {
		return nil
	}
	return &BookSummary{ID: b.ID, Title: b.Title, Author: b.Author}
}

func toBookResponse(b *domain.Book) BookResponse {
	tags := []string(b.Tags)
	if tags == nil {
		tags = []string{}
	}
	return BookResponse{
		ID:                b.ID,
		Title:             b.Title,
		Author:            b.Author,
		Description:       b.Description,
		Language:          b.Language,
		CoverImage:        b.CoverImage,
		Tags:              tags,
		OwnerID:           b.OwnerID.String(),
		Owner:             toPersonSummary(b.Owner),
		TranslationsCount: b.TranslationsCount,
		BookmarksCount:    b.BookmarksCount,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func toBookResponses(books []*domain.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, toBookResponse(b))
	}
	return resp
}

func toTranslationResponse(t *domain.Translation) TranslationResponse {
	return TranslationResponse{
		ID:             t.ID,
		BookID:         t.BookID,
		TranslatorID:   t.TranslatorID.String(),
		OriginalText:   t.OriginalText,
		TranslatedText: t.TranslatedText,
		SourceLanguage: t.SourceLanguage,
		TargetLanguage: t.TargetLanguage,
		Book:           toBookSummary(t.Book),
		Translator:     toPersonSummary(t.Translator),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTranslationResponses(translations []*domain.Translation) []TranslationResponse {
	resp := make([]TranslationResponse, 0, len(translations))
	for _, t := range translations {
		resp = append(resp, toTranslationResponse(t))
	}
	return resp
}

func toBookmarkResponse(b *domain.Bookmark) *BookmarkResponse {
	if b == nil {
		return nil
	}
	return &BookmarkResponse{
		ID:            b.ID,
		UserID:        b.UserID.String(),
		BookID:        b.BookID,
		TranslationID: b.TranslationID,
		CreatedAt:     b.CreatedAt,
	}
}
