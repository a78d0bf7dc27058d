package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookmarkBody struct {
	ID            uint   `json:"id"`
	UserID        string `json:"userId"`
	BookID        *uint  `json:"bookId"`
	TranslationID *uint  `json:"translationId"`
	CreatedAt     string `json:"createdAt"`
}

func TestBookmarkHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("book bookmark then duplicate", func(t *testing.T) {
		ts.Reset(t)
		user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		book := testutil.NewBookBuilder().Build(t, ts.DB.DB)

		resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"bookId": book.ID}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created bookmarkBody
		testutil.AssertJSONResponse(t, resp, &created)
		require.NotNil(t, created.BookID)
		assert.Equal(t, book.ID, *created.BookID)
		assert.Nil(t, created.TranslationID)
		assert.Equal(t, user.ID.String(), created.UserID)

		resp = ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"bookId": book.ID}, token)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var conflict struct {
			Error    string       `json:"error"`
			Bookmark bookmarkBody `json:"bookmark"`
		}
		testutil.AssertJSONResponse(t, resp, &conflict)
		assert.Equal(t, "Bookmark already exists", conflict.Error)
		assert.Equal(t, created.ID, conflict.Bookmark.ID)
	})

	t.Run("translation bookmark", func(t *testing.T) {
		ts.Reset(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		translation := testutil.NewTranslationBuilder().Build(t, ts.DB.DB)

		resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"translationId": translation.ID}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created bookmarkBody
		testutil.AssertJSONResponse(t, resp, &created)
		require.NotNil(t, created.TranslationID)
		assert.Equal(t, translation.ID, *created.TranslationID)
		assert.Nil(t, created.BookID)
	})

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "neither target",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Either translationId or bookId is required",
		},
		{
			name:           "both targets",
			body:           map[string]uint{"bookId": 1, "translationId": 1},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Cannot bookmark both translation and book",
		},
		{
			name:           "unknown book",
			body:           map[string]uint{"bookId": 9999},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Bookmark target does not exist",
		},
		{
			name:           "non-numeric id",
			body:           map[string]string{"bookId": "five"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.Reset(t)
			_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

			resp := ts.Do(t, http.MethodPost, "/bookmarks", tt.body, token)
			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
		})
	}
}

func TestBookmarkHandler_BookIDFive(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	var book *domain.Book
	for i := 0; i < 5; i++ {
		book = testutil.NewBookBuilder().WithOwner(owner).WithTitle(fmt.Sprintf("Book %d", i+1)).Build(t, ts.DB.DB)
	}
	require.Equal(t, uint(5), book.ID)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]int{"bookId": 5}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created bookmarkBody
	testutil.AssertJSONResponse(t, resp, &created)
	require.NotNil(t, created.BookID)
	assert.Equal(t, uint(5), *created.BookID)

	resp = ts.Do(t, http.MethodPost, "/bookmarks", map[string]int{"bookId": 5}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBookmarkHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := ts.Do(t, http.MethodGet, "/bookmarks", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	empty := testutil.DecodeMap(t, resp)
	assert.Equal(t, []interface{}{}, empty["books"])
	assert.Equal(t, []interface{}{}, empty["translations"])

	book := testutil.NewBookBuilder().WithTitle("Siddhartha").Build(t, ts.DB.DB)
	translation := testutil.NewTranslationBuilder().Build(t, ts.DB.DB)

	resp = ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"bookId": book.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"translationId": translation.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.Do(t, http.MethodGet, "/bookmarks", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Books []struct {
			ID           uint   `json:"id"`
			Title        string `json:"title"`
			BookmarkID   uint   `json:"bookmarkId"`
			BookmarkedAt string `json:"bookmarkedAt"`
			Owner        *struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"owner"`
		} `json:"books"`
		Translations []struct {
			ID           uint   `json:"id"`
			BookmarkID   uint   `json:"bookmarkId"`
			BookmarkedAt string `json:"bookmarkedAt"`
			Book         *struct {
				Title string `json:"title"`
			} `json:"book"`
			Translator *struct {
				Name string `json:"name"`
			} `json:"translator"`
		} `json:"translations"`
	}
	testutil.AssertJSONResponse(t, resp, &list)

	require.Len(t, list.Books, 1)
	assert.Equal(t, book.ID, list.Books[0].ID)
	assert.Equal(t, "Siddhartha", list.Books[0].Title)
	assert.NotZero(t, list.Books[0].BookmarkID)
	assert.NotEmpty(t, list.Books[0].BookmarkedAt)
	require.NotNil(t, list.Books[0].Owner)
	assert.Empty(t, list.Books[0].Owner.Email)

	require.Len(t, list.Translations, 1)
	assert.Equal(t, translation.ID, list.Translations[0].ID)
	assert.NotZero(t, list.Translations[0].BookmarkID)
	assert.NotNil(t, list.Translations[0].Book)
	assert.NotNil(t, list.Translations[0].Translator)
}

func TestBookmarkHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("without authorization header", func(t *testing.T) {
		resp := ts.Do(t, http.MethodDelete, "/bookmarks/1", nil, "")
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Authorization header missing")
	})

	t.Run("owner deletes", func(t *testing.T) {
		ts.Reset(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		book := testutil.NewBookBuilder().Build(t, ts.DB.DB)

		resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"bookId": book.ID}, token)
		var created bookmarkBody
		testutil.AssertJSONResponse(t, resp, &created)

		resp = ts.Do(t, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var deleted struct {
			Success   bool `json:"success"`
			DeletedID uint `json:"deletedId"`
		}
		testutil.AssertJSONResponse(t, resp, &deleted)
		assert.True(t, deleted.Success)
		assert.Equal(t, created.ID, deleted.DeletedID)

		resp = ts.Do(t, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), nil, token)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Bookmark not found")
	})

	t.Run("someone else's bookmark", func(t *testing.T) {
		ts.Reset(t)
		_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		book := testutil.NewBookBuilder().Build(t, ts.DB.DB)

		resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"bookId": book.ID}, ownerToken)
		var created bookmarkBody
		testutil.AssertJSONResponse(t, resp, &created)

		resp = ts.Do(t, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), nil, strangerToken)
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Not authorized to delete this bookmark")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		ts.Reset(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := ts.Do(t, http.MethodDelete, "/bookmarks/abc", nil, token)
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid bookmark id")
	})
}

func TestBookmarkHandler_Check(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	book := testutil.NewBookBuilder().Build(t, ts.DB.DB)
	translation := testutil.NewTranslationBuilder().Build(t, ts.DB.DB)

	resp := ts.Do(t, http.MethodPost, "/bookmarks", map[string]uint{"translationId": translation.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		wantBookmarked bool
	}{
		{name: "check translation", path: fmt.Sprintf("/bookmarks/check?translationId=%d", translation.ID), expectedStatus: http.StatusOK, wantBookmarked: true},
		{name: "check book", path: fmt.Sprintf("/bookmarks/check?bookId=%d", book.ID), expectedStatus: http.StatusOK},
		{name: "translation wins over book", path: fmt.Sprintf("/bookmarks/check?bookId=%d&translationId=%d", book.ID, translation.ID), expectedStatus: http.StatusOK, wantBookmarked: true},
		{name: "check-book", path: fmt.Sprintf("/bookmarks/check-book?bookId=%d", book.ID), expectedStatus: http.StatusOK},
		{name: "check-translation", path: fmt.Sprintf("/bookmarks/check-translation?translationId=%d", translation.ID), expectedStatus: http.StatusOK, wantBookmarked: true},
		{name: "check without ids", path: "/bookmarks/check", expectedStatus: http.StatusBadRequest},
		{name: "check-book without id", path: "/bookmarks/check-book", expectedStatus: http.StatusBadRequest},
		{name: "check-translation with bad id", path: "/bookmarks/check-translation?translationId=-3", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodGet, tt.path, nil, token)
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var body struct {
				IsBookmarked bool          `json:"isBookmarked"`
				Bookmark     *bookmarkBody `json:"bookmark"`
			}
			testutil.AssertJSONResponse(t, resp, &body)
			assert.Equal(t, tt.wantBookmarked, body.IsBookmarked)
			assert.Equal(t, tt.wantBookmarked, body.Bookmark != nil)
		})
	}
}
