package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON_AddsQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		assert.Equal(t, "k-123", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["email"]})
	}))
	defer srv.Close()

	c, err := New(time.Second,
		WithBaseURL(srv.URL+"/v1/"),
		WithQueryParam("key", "k-123"),
		WithHeader("X-Test", "yes"),
	)
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	require.NoError(t, c.PostJSON(context.Background(), "accounts:signUp", map[string]string{"email": "a@b.com"}, &out))
	assert.Equal(t, "a@b.com", out.Echo)
}

func TestClient_Non2xxReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"EMAIL_EXISTS"}}`))
	}))
	defer srv.Close()

	c, err := New(time.Second, WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = c.PostJSON(context.Background(), "/x", map[string]string{}, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, httpErr.DecodeBody(&body))
	assert.Equal(t, "EMAIL_EXISTS", body.Error.Message)
}

func TestClient_RelativePathNeedsBaseURL(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)
	require.Error(t, c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil))

	_, err = New(0, WithBaseURL("::not a url"))
	require.Error(t, err)
}
