package images

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func zipBytes(t *testing.T, files map[string][]byte, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range dirs {
		_, err := zw.Create(d)
		require.NoError(t, err)
	}
	for name, data := range files {
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFetch_ExtractsImagesOnly(t *testing.T) {
	img := pngBytes(t, 4, 3)
	archive := zipBytes(t, map[string][]byte{
		"a.png":        img,
		"photos/B.JPG": []byte("jpeg-bytes"),
		"c.webp":       []byte("webp-bytes"),
		"notes.txt":    []byte("not an image"),
		"noextension":  []byte("x"),
	}, "photos/")

	var gotPhotos []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/fileupload/download/ticketattachment/multiple", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("AccessToken"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&gotPhotos)
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	f := New(srv.URL+"/api", cacheDir, srv.Client())

	got := f.Fetch(context.Background(), []string{"a.png", "B.JPG"}, "tok")

	assert.Equal(t, []string{"a.png", "B.JPG"}, gotPhotos)
	require.Len(t, got, 3)
	for _, name := range []string{"a.png", "photos/B.JPG", "c.webp"} {
		p, ok := got[name]
		require.True(t, ok, "missing %s", name)
		assert.True(t, strings.HasPrefix(p, cacheDir), "%s outside cache dir", p)
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	data, err := os.ReadFile(got["a.png"])
	require.NoError(t, err)
	assert.Equal(t, img, data)

	info, err := Describe(got["a.png"])
	require.NoError(t, err)
	assert.Equal(t, Info{Format: "png", Width: 4, Height: 3}, info)
	assert.Equal(t, "png 4x3", info.String())

	p, ok := Lookup(got, "B.JPG")
	assert.True(t, ok)
	assert.Equal(t, got["photos/B.JPG"], p)
}

func TestFetch_NoRequestWithoutInput(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	f := New(srv.URL, t.TempDir(), srv.Client())

	assert.Empty(t, f.Fetch(context.Background(), nil, "tok"))
	assert.Empty(t, f.Fetch(context.Background(), []string{"a.png"}, ""))
	assert.Equal(t, 0, calls)
}

func TestFetch_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"not a zip", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("definitely not a zip archive"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got := New(srv.URL, t.TempDir(), srv.Client()).Fetch(context.Background(), []string{"a.png"}, "tok")

			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFetch_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	got := New(url, t.TempDir(), nil).Fetch(context.Background(), []string{"a.png"}, "tok")
	assert.Empty(t, got)
}

func TestIsImage(t *testing.T) {
	tests := map[string]bool{
		"a.png":    true,
		"a.PNG":    true,
		"a.jpeg":   true,
		"a.jpg":    true,
		"a.webp":   true,
		"a.gif":    false,
		"a.txt":    false,
		"png":      false,
		"dir/a.jp": false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsImage(name), "IsImage(%q)", name)
	}
}

func TestLookup_Missing(t *testing.T) {
	_, ok := Lookup(map[string]string{"a.png": "/x/a.png"}, "b.png")
	assert.False(t, ok)
}

func TestLookup_BaseNameCollision(t *testing.T) {
	paths := map[string]string{
		"zeta/cover.jpg":  "/cache/zeta/cover.jpg",
		"alpha/cover.jpg": "/cache/alpha/cover.jpg",
		"mid/cover.jpg":   "/cache/mid/cover.jpg",
	}

	for range 20 {
		got, ok := Lookup(paths, "uploads\\cover.jpg")
		require.True(t, ok)
		assert.Equal(t, "/cache/alpha/cover.jpg", got)
	}

	got, ok := Lookup(paths, "mid/cover.jpg")
	require.True(t, ok)
	assert.Equal(t, "/cache/mid/cover.jpg", got, "exact entry names win over base names")
}

func TestPurge(t *testing.T) {
	cacheDir := t.TempDir()
	batch := filepath.Join(cacheDir, "3f2c8c1e-8f7e-4a4e-9b7a-0d6a2b1f9c11")
	keep := filepath.Join(cacheDir, "keep")
	require.NoError(t, os.MkdirAll(batch, 0o750))
	require.NoError(t, os.MkdirAll(keep, 0o750))

	f := New("http://unused", cacheDir, nil)
	require.NoError(t, f.Purge())

	_, err := os.Stat(batch)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(keep)
	assert.NoError(t, err)

	assert.NoError(t, New("http://unused", filepath.Join(cacheDir, "missing"), nil).Purge())
}

func TestDescribe_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(p, []byte("nope"), 0o600))

	_, err := Describe(p)
	assert.Error(t, err)

	_, err = Describe(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
