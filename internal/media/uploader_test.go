package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "avatar.jpg", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))
		assert.Equal(t, "secret", r.FormValue("key"))

		w.Write([]byte(`{"url": "https://img.example.com/abc123.jpg"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	url, err := client.Upload(context.Background(), "avatar.jpg", strings.NewReader("fake image bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/abc123.jpg", url)
}

func TestUpload_HostErrorSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "image exceeds maximum dimensions"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")

	_, err := client.Upload(context.Background(), "avatar.jpg", strings.NewReader("x"))

	require.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "image exceeds maximum dimensions")
}

func TestUpload_EmptyURLTreatedAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url": ""}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")

	_, err := client.Upload(context.Background(), "avatar.jpg", strings.NewReader("x"))

	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUpload_HostUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "")

	_, err := client.Upload(context.Background(), "avatar.jpg", strings.NewReader("x"))

	require.ErrorIs(t, err, ErrUploadFailed)
}
