package elpais

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"headlinewatch/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// ImageFetcher downloads cover images over plain http, outside the
// browser session.
type ImageFetcher struct {
	http *resty.Client
	dir  string
}

func NewImageFetcher(dir string) *ImageFetcher {
	client := resty.New()
	client.SetTimeout(time.Second * 15)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &ImageFetcher{http: client, dir: dir}
}

func extensionFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}

// Download fetches imageURL and writes it as article_<n>_cover with an
// extension derived from the response content type. Returns the
// written file path.
func (f *ImageFetcher) Download(ctx context.Context, imageURL string, idx int) (string, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	res, err := f.http.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("image request returned status %d", res.StatusCode())
	}

	ext := extensionFromContentType(res.Header().Get("Content-Type"))
	path := filepath.Join(f.dir, fmt.Sprintf("article_%d_cover.%s", idx+1, ext))
	if err := os.WriteFile(path, res.Body(), 0644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path, nil
}
