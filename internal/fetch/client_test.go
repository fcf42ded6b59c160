package fetch

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
)

func TestFetch_Success(t *testing.T) {
	var gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": 1}]}`))
	}))
	defer srv.Close()

	body, err := New(WithUserAgent("test-agent")).Fetch(context.Background(), srv.URL+"/users")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": [{"id": 1}]}`, string(body))
	assert.Equal(t, "test-agent", gotAgent)
	assert.Equal(t, "application/json", gotAccept)
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrHTTPStatus))

	var statusErr *StatusError
	require.True(t, stderrors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetch_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com/x.json", "/relative/path", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := New().Fetch(context.Background(), raw)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidURL), "got %v", err)
		})
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["` + strings.Repeat("x", 64) + `"]`))
	}))
	defer srv.Close()

	_, err := New(WithMaxBodyBytes(16)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeFetch}))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.json"))
	assert.True(t, IsURL("HTTP://example.com"))
	assert.False(t, IsURL("./data.json"))
	assert.False(t, IsURL("-"))
}
