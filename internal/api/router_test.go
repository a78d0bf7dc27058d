package api_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/dom/crowd-translate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("health", func(t *testing.T) {
		resp := ts.Do(t, http.MethodGet, "/health", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("unknown route", func(t *testing.T) {
		resp := ts.Do(t, http.MethodGet, "/nowhere", nil, "")
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Not found")
	})

	t.Run("wrong method on a protected resource", func(t *testing.T) {
		resp := ts.Do(t, http.MethodPut, "/bookmarks", nil, "")
		testutil.AssertErrorResponse(t, resp, http.StatusMethodNotAllowed, "Method not allowed")
	})

	t.Run("cors preflight from the frontend", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, ts.URL("/bookmarks"), nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
