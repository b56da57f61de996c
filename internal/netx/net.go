// Package netx has small HTTP helpers for moving image payloads around.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultImageType is reported when a payload cannot be identified as an image.
const DefaultImageType = "image/jpeg"

// MaxDownloadSize caps a single Download.
const MaxDownloadSize = 20 << 20

// Blob is a downloaded payload with its sniffed type.
type Blob struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Sniff detects the content type of data and returns it with a file extension
// (including the leading dot). Anything that is not an image falls back to
// DefaultImageType, since the remote API only accepts image uploads.
func Sniff(data []byte) (contentType, ext string) {
	m := mimetype.Detect(data)
	for p := m; p != nil; p = p.Parent() {
		if p.Is("image/png") || p.Is("image/jpeg") || p.Is("image/gif") || p.Is("image/webp") || p.Is("image/heic") {
			return p.String(), p.Extension()
		}
	}
	return DefaultImageType, ".jpg"
}

// Download fetches url with a GET request and sniffs the payload.
func Download(ctx context.Context, client *http.Client, url string) (Blob, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Blob{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return Blob{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Blob{}, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return Blob{}, err
	}
	if len(data) > MaxDownloadSize {
		return Blob{}, fmt.Errorf("download too large: more than %d bytes", MaxDownloadSize)
	}

	ct, ext := Sniff(data)
	return Blob{Data: data, ContentType: ct, Extension: ext}, nil
}
