package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/config"
)

func TestClientCredentialsSourceFetchAndCache(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "app-id", r.FormValue("client_id"))
		assert.Equal(t, "app-secret", r.FormValue("client_secret"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	}))
	defer srv.Close()

	src := NewClientCredentialsSource(config.DriveConfig{
		TokenURL:     srv.URL,
		ClientID:     "app-id",
		ClientSecret: "app-secret",
	}, srv.Client())

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// Second call is served from cache.
	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, requests)
}

func TestClientCredentialsSourceRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid client", http.StatusUnauthorized)
	}))
	defer srv.Close()

	src := NewClientCredentialsSource(config.DriveConfig{TokenURL: srv.URL}, srv.Client())

	_, err := src.Token(context.Background())
	require.Error(t, err)

	var driveErr *Error
	require.ErrorAs(t, err, &driveErr)
	assert.Equal(t, http.StatusUnauthorized, driveErr.StatusCode)
}
