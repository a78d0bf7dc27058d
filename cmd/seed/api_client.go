package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Book struct {
	ID                uint     `json:"id"`
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	Language          string   `json:"language"`
	Tags              []string `json:"tags"`
	Owner             *Person  `json:"owner"`
	TranslationsCount int      `json:"translationsCount"`
	BookmarksCount    int      `json:"bookmarksCount"`
}

type Translation struct {
	ID             uint    `json:"id"`
	BookID         uint    `json:"bookId"`
	OriginalText   string  `json:"originalText"`
	TranslatedText string  `json:"translatedText"`
	SourceLanguage string  `json:"sourceLanguage"`
	TargetLanguage string  `json:"targetLanguage"`
	Translator     *Person `json:"translator"`
}

type Bookmarks struct {
	Translations []Translation `json:"translations"`
	Books        []Book        `json:"books"`
}

type Profile struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Stats struct {
		TranslationsCount int `json:"translationsCount"`
		BooksCount        int `json:"booksCount"`
		BookmarksCount    int `json:"bookmarksCount"`
	} `json:"stats"`
}

type NewBook struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Language string   `json:"language"`
	Tags     []string `json:"tags"`
}

type NewTranslation struct {
	BookID         uint   `json:"bookId"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// CreateBook adds a book owned by the token's user
func (c *APIClient) CreateBook(token string, book NewBook) (*Book, error) {
	var created Book
	if err := c.do(http.MethodPost, "/books", book, token, http.StatusCreated, &created); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &created, nil
}

// CreateTranslation adds a translation by the token's user
func (c *APIClient) CreateTranslation(token string, translation NewTranslation) (*Translation, error) {
	var created Translation
	if err := c.do(http.MethodPost, "/translations", translation, token, http.StatusCreated, &created); err != nil {
		return nil, fmt.Errorf("create translation: %w", err)
	}
	return &created, nil
}

// BookmarkBook bookmarks a book. An existing bookmark is not an error.
func (c *APIClient) BookmarkBook(token string, bookID uint) error {
	return c.bookmark(token, map[string]uint{"bookId": bookID})
}

// BookmarkTranslation bookmarks a translation. An existing bookmark is not an error.
func (c *APIClient) BookmarkTranslation(token string, translationID uint) error {
	return c.bookmark(token, map[string]uint{"translationId": translationID})
}

func (c *APIClient) bookmark(token string, body map[string]uint) error {
	err := c.do(http.MethodPost, "/bookmarks", body, token, http.StatusCreated, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusConflict {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

// ListBookmarks returns the token user's bookmarks
func (c *APIClient) ListBookmarks(token string) (*Bookmarks, error) {
	var bookmarks Bookmarks
	if err := c.do(http.MethodGet, "/bookmarks", nil, token, http.StatusOK, &bookmarks); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return &bookmarks, nil
}

// GetProfile returns the token user's own profile
func (c *APIClient) GetProfile(token string) (*Profile, error) {
	var profile Profile
	if err := c.do(http.MethodGet, "/profile", nil, token, http.StatusOK, &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Translate runs text through the machine translation endpoint
func (c *APIClient) Translate(text, targetLanguage string) (string, error) {
	var resp struct {
		TranslatedText string `json:"translatedText"`
	}
	body := map[string]string{"text": text, "targetLanguage": targetLanguage}
	if err := c.do(http.MethodPost, "/translate", body, "", http.StatusOK, &resp); err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return resp.TranslatedText, nil
}

// Health checks the server is reachable
func (c *APIClient) Health() error {
	return c.do(http.MethodGet, "/health", nil, "", http.StatusOK, nil)
}

// StatusError is returned when the server answers with an unexpected status
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
