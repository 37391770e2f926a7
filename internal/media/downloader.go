package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Downloader fetches article images to a local directory. Downloads are
// best-effort: callers treat any error as an absent picture path.
type Downloader struct {
	outputDir string
	client    *http.Client
	logger    *slog.Logger
	mu        sync.Mutex
	seen      map[string]string // URL -> local path
}

// NewDownloader creates an image downloader writing under outputDir.
func NewDownloader(outputDir string, logger *slog.Logger) *Downloader {
	return &Downloader{
		outputDir: outputDir,
		client:    &http.Client{Timeout: 60 * time.Second},
		logger:    logger.With("component", "image_downloader"),
		seen:      make(map[string]string),
	}
}

// Download streams the image at rawURL to disk and returns its local
// path. The filename comes from the URL path basename; when it carries
// no extension one is inferred from the Content-Type, and content types
// other than JPEG/PNG/WebP skip the download. A URL seen before reuses
// the already-downloaded file.
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, error) {
	d.mu.Lock()
	if p, ok := d.seen[rawURL]; ok {
		d.mu.Unlock()
		return p, nil
	}
	d.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("download %s: no usable filename", rawURL)
	}

	if path.Ext(name) == "" {
		ext, err := extensionFor(resp.Header.Get("Content-Type"))
		if err != nil {
			return "", err
		}
		name += ext
	}

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	localPath := filepath.Join(d.outputDir, name)
	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	d.mu.Lock()
	d.seen[rawURL] = localPath
	d.mu.Unlock()

	d.logger.Debug("image downloaded", "url", rawURL, "path", localPath, "size", size)
	return localPath, nil
}

// extensionFor maps a response content type to a file extension.
// Only the image formats the pipeline supports are accepted.
func extensionFor(contentType string) (string, error) {
	ct, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(ct) {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}
