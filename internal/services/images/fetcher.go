// Package images downloads project photos as a zip batch and extracts them
// into a local cache directory.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/j-veylop/promaster-tui/internal/logger"
)

const (
	downloadPath = "fileupload/download/ticketattachment/multiple"

	// maxEntrySize bounds a single extracted image.
	maxEntrySize = 32 << 20
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Fetcher downloads batches of photos from the backend.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	cacheDir   string
}

// New creates a fetcher writing extracted images under cacheDir.
func New(baseURL, cacheDir string, httpClient *http.Client) *Fetcher {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{
		httpClient: httpClient,
		baseURL:    baseURL,
		cacheDir:   cacheDir,
	}
}

// Fetch downloads the given photos and returns a map from each archive
// entry name to the extracted local file path.
//
// Without photos or token no request is made. Any failure is logged and
// yields an empty map; callers show a placeholder for missing images.
func (f *Fetcher) Fetch(ctx context.Context, photos []string, token string) map[string]string {
	result := make(map[string]string)
	if len(photos) == 0 || token == "" {
		return result
	}

	data, err := f.download(ctx, photos, token)
	if err != nil {
		logger.Error("failed to download images", "count", len(photos), "error", err)
		return result
	}

	extracted, err := f.extract(data)
	if err != nil {
		logger.Error("failed to extract images", "error", err)
		return make(map[string]string)
	}

	logger.Debug("images extracted", "requested", len(photos), "extracted", len(extracted))
	return extracted
}

func (f *Fetcher) download(ctx context.Context, photos []string, token string) ([]byte, error) {
	body, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photo list: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+downloadPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("AccessToken", token)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return data, nil
}

// extract writes every image entry of the archive into a fresh directory.
// The map is keyed by the entry name as stored in the archive; files on disk
// use an index-prefixed base name so nested entries cannot escape dir.
func (f *Fetcher) extract(data []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid archive: %w", err)
	}

	dir := filepath.Join(f.cacheDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	result := make(map[string]string)
	for i, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		base := path.Base(strings.ReplaceAll(entry.Name, "\\", "/"))
		if !IsImage(base) {
			continue
		}

		dest := filepath.Join(dir, fmt.Sprintf("%03d-%s", i, base))
		if err := writeEntry(entry, dest); err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
		result[entry.Name] = dest
	}

	if len(result) == 0 {
		_ = os.Remove(dir)
	}
	return result, nil
}

func writeEntry(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", entry.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	n, err := io.Copy(out, io.LimitReader(rc, maxEntrySize+1))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if n > maxEntrySize {
		return fmt.Errorf("image %s exceeds %d bytes", entry.Name, maxEntrySize)
	}
	return nil
}

// Lookup returns the cached path for a photo reference, matching either the
// full archive entry name or its base name. When several entries share the
// base name, the first entry name in sorted order wins.
func Lookup(paths map[string]string, photo string) (string, bool) {
	if p, ok := paths[photo]; ok {
		return p, true
	}
	base := path.Base(strings.ReplaceAll(photo, "\\", "/"))
	for _, name := range slices.Sorted(maps.Keys(paths)) {
		if path.Base(strings.ReplaceAll(name, "\\", "/")) == base {
			return paths[name], true
		}
	}
	return "", false
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Purge removes every extracted batch from the cache directory.
func (f *Fetcher) Purge() error {
	entries, err := os.ReadDir(f.cacheDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read image cache: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		if err := os.RemoveAll(filepath.Join(f.cacheDir, e.Name())); err != nil {
			return fmt.Errorf("failed to purge %s: %w", e.Name(), err)
		}
	}
	return nil
}
