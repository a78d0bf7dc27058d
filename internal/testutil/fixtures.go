package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email  string
	name   string
	avatar string
}

// NewUserBuilder creates a new UserBuilder with a unique email
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:  fmt.Sprintf("reader_%s@example.com", suffix),
		name:   fmt.Sprintf("Reader %s", suffix),
		avatar: "https://example.com/avatar.png",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithAvatar(avatar string) *UserBuilder {
	b.avatar = avatar
	return b
}

// Build inserts the user directly into the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:     uuid.New(),
		Email:  b.email,
		Name:   b.name,
		Avatar: b.avatar,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// BuildAndAuthenticate signs the user in through POST /auth/validate-token
// and returns the stored user with its session token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	idToken := "id-token-" + uuid.NewString()
	ts.Verifier.Register(idToken, service.IdentityClaims{
		Subject:       uuid.NewString(),
		Email:         b.email,
		EmailVerified: true,
		Name:          b.name,
		Picture:       b.avatar,
	})

	body, _ := json.Marshal(map[string]string{"idToken": idToken})
	resp, err := http.Post(ts.URL("/auth/validate-token"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	user, err := ts.Repos.User.GetByEmail(context.Background(), b.email)
	if err != nil {
		t.Fatalf("signed-in user not stored: %v", err)
	}

	return user, loginResp.SessionToken
}

// LoginResponse matches the validate-token response
type LoginResponse struct {
	Success bool `json:"success"`
	User    struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"user"`
	SessionToken string `json:"sessionToken"`
	Error        string `json:"error"`
}

// SessionToken mints a session token for an existing user without going
// through sign-in.
func (ts *TestServer) SessionToken(t *testing.T, user *domain.User) string {
	t.Helper()

	token, err := ts.Services.Auth.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("failed to issue session token: %v", err)
	}
	return token
}

// BookBuilder creates test books with a builder pattern
type BookBuilder struct {
	owner    *domain.User
	title    string
	author   string
	language string
	tags     []string
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		title:    "The Little Prince",
		author:   "Antoine de Saint-Exupery",
		language: "fr",
		tags:     []string{"classic"},
	}
}

func (b *BookBuilder) WithOwner(user *domain.User) *BookBuilder {
	b.owner = user
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.title = title
	return b
}

func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.author = author
	return b
}

func (b *BookBuilder) WithTags(tags []string) *BookBuilder {
	b.tags = tags
	return b
}

// Build inserts the book, creating an owner when none was set
func (b *BookBuilder) Build(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()

	if b.owner == nil {
		b.owner = NewUserBuilder().Build(t, db)
	}

	book := &domain.Book{
		Title:    b.title,
		Author:   b.author,
		Language: b.language,
		Tags:     b.tags,
		OwnerID:  b.owner.ID,
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return book
}

// TranslationBuilder creates test translations with a builder pattern
type TranslationBuilder struct {
	book       *domain.Book
	translator *domain.User
	original   string
	translated string
	source     string
	target     string
}

func NewTranslationBuilder() *TranslationBuilder {
	return &TranslationBuilder{
		original:   "On ne voit bien qu'avec le coeur.",
		translated: "One sees clearly only with the heart.",
		source:     "fr",
		target:     "en",
	}
}

func (b *TranslationBuilder) WithBook(book *domain.Book) *TranslationBuilder {
	b.book = book
	return b
}

func (b *TranslationBuilder) WithTranslator(user *domain.User) *TranslationBuilder {
	b.translator = user
	return b
}

func (b *TranslationBuilder) WithText(original, translated string) *TranslationBuilder {
	b.original = original
	b.translated = translated
	return b
}

// Build inserts the translation, creating a book and translator when unset.
// Book counters are not touched.
func (b *TranslationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Translation {
	t.Helper()

	if b.translator == nil {
		b.translator = NewUserBuilder().Build(t, db)
	}
	if b.book == nil {
		b.book = NewBookBuilder().WithOwner(b.translator).Build(t, db)
	}

	translation := &domain.Translation{
		BookID:         b.book.ID,
		TranslatorID:   b.translator.ID,
		OriginalText:   b.original,
		TranslatedText: b.translated,
		SourceLanguage: b.source,
		TargetLanguage: b.target,
	}

	if err := db.Create(translation).Error; err != nil {
		t.Fatalf("failed to create translation: %v", err)
	}

	return translation
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	bodyReader := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends a request to the test server and fails the test on transport errors.
func (ts *TestServer) Do(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, ts.URL(path), body, token))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
