package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSniff(t *testing.T) {
	ct, ext := Sniff(pngHeader)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	ct, ext = Sniff([]byte("plain text, not an image"))
	assert.Equal(t, DefaultImageType, ct)
	assert.Equal(t, ".jpg", ext)
}

func TestDownload(t *testing.T) {
	t.Run("success sniffs type", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write(pngHeader)
		}))
		defer ts.Close()

		b, err := Download(context.Background(), ts.Client(), ts.URL+"/floor.png")
		require.NoError(t, err)
		assert.Equal(t, pngHeader, b.Data)
		assert.Equal(t, "image/png", b.ContentType)
		assert.Equal(t, ".png", b.Extension)
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		_, err := Download(context.Background(), nil, ts.URL)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "download failed: 403"), err.Error())
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := Download(context.Background(), nil, ts.URL)
		require.Error(t, err)
		assert.False(t, strings.Contains(err.Error(), "download failed"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Download(ctx, nil, ts.URL)
		require.True(t, errors.Is(err, context.Canceled))
	})
}
