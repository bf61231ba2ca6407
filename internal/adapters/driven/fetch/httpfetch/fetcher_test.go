package httpfetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_OK(t *testing.T) {
	var gotMethod string
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "text/plain; charset=ISO-8859-1")
		_, _ = io.WriteString(w, "body B")
	}))
	defer server.Close()

	result, err := New().Fetch(context.Background(), server.URL+"/doc")
	require.NoError(t, err)
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Empty(t, gotHeaders.Get("Authorization"))
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/plain; charset=ISO-8859-1", result.ContentType)
	assert.Equal(t, "ISO-8859-1", result.Charset)
	assert.Equal(t, "body B", string(body))
}

func TestFetch_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	result, err := New().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	defer result.Body.Close()

	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	result, err := New(WithTimeout(time.Second)).Fetch(context.Background(), url)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New().Fetch(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestFetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_TooManyRequestsSetsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := New()
	result, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	result.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, result.StatusCode)
	assert.WithinDuration(t, time.Now().Add(120*time.Second), f.limiter.RetryAt(), 5*time.Second)

	// The next fetch waits for the backoff and gives up with the context
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithHTTPClient(t *testing.T) {
	client := &http.Client{}
	f := New(WithHTTPClient(client))
	assert.Same(t, client, f.client)
}

func TestNew_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New().client.Timeout)
	assert.Equal(t, 5*time.Second, New(WithTimeout(5*time.Second)).client.Timeout)
}

func TestCharsetOf(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"", ""},
		{"text/plain", ""},
		{"text/plain; charset=utf-8", "utf-8"},
		{"text/html;charset=\"Shift_JIS\"", "Shift_JIS"},
		{"not a media type;;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, charsetOf(tt.contentType))
		})
	}
}
