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
	ErrBookNotFound = errors.New("book not found")
	ErrNotBookOwner = errors.New("only the book owner can modify it")
)

type BookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

type CreateBookInput struct {
	Title       string
	Author      string
	Description string
	Language    string
	CoverImage  string
	Tags        []string
}

// UpdateBookInput holds optional changes; nil fields are left untouched.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Description *string
	Language    *string
	CoverImage  *string
	Tags        []string
}

func (s *BookService) Create(ctx context.Context, ownerID uuid.UUID, input CreateBookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Language:    input.Language,
		CoverImage:  input.CoverImage,
		Tags:        input.Tags,
		OwnerID:     ownerID,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return s.Get(ctx, book.ID)
}

func (s *BookService) Get(ctx context.Context, id uint) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.List(ctx)
}

func (s *BookService) Update(ctx context.Context, userID uuid.UUID, id uint, input UpdateBookInput) (*domain.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.OwnerID != userID {
		return nil, ErrNotBookOwner
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Language != nil {
		book.Language = *input.Language
	}
	if input.CoverImage != nil {
		book.CoverImage = *input.CoverImage
	}
	if input.Tags != nil {
		book.Tags = input.Tags
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return book, nil
}
