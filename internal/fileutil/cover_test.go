package fileutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/backlog/internal/testutil"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBuildCoverFilename(t *testing.T) {
	assert.Equal(t, "Hades - cover.jpg", BuildCoverFilename("Hades"))
	assert.Equal(t, "Celeste - Farewell - cover.jpg", BuildCoverFilename("Celeste: Farewell"))
}

func TestDownloadCoverEmptyURL(t *testing.T) {
	result, err := DownloadCover(context.Background(), CoverDownloadOptions{OutputDir: t.TempDir(), Title: "x"})
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestDownloadCoverResizes(t *testing.T) {
	env := testutil.NewTestEnv(t)
	server := imageServer(t, pngBytes(t, 800, 1200), nil)

	result, err := DownloadCover(context.Background(), CoverDownloadOptions{
		URL:       server.URL + "/grid.png",
		OutputDir: env.RootDir(),
		Title:     "Hades: Deluxe",
		MaxWidth:  200,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Downloaded)
	assert.Equal(t, "Hades - Deluxe - cover.jpg", result.Filename)
	assert.Equal(t, "attachments/Hades - Deluxe - cover.jpg", result.RelativePath)
	env.RequireFileExists(filepath.Join("attachments", "Hades - Deluxe - cover.jpg"))

	img, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestDownloadCoverKeepsSmallImages(t *testing.T) {
	server := imageServer(t, pngBytes(t, 100, 150), nil)

	result, err := DownloadCover(context.Background(), CoverDownloadOptions{
		URL:       server.URL,
		OutputDir: t.TempDir(),
		Filename:  "small.jpg",
	})
	require.NoError(t, err)

	img, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestDownloadCoverDecodesWebP(t *testing.T) {
	webp, err := os.ReadFile(filepath.Join("testdata", "cover.lossless.webp"))
	require.NoError(t, err)
	server := imageServer(t, webp, nil)

	result, err := DownloadCover(context.Background(), CoverDownloadOptions{
		URL:       server.URL,
		OutputDir: t.TempDir(),
		Filename:  "grid.jpg",
	})
	require.NoError(t, err)
	assert.True(t, result.Downloaded)

	img, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestDownloadCoverSkipsExisting(t *testing.T) {
	var hits int32
	server := imageServer(t, pngBytes(t, 10, 10), &hits)
	dir := t.TempDir()
	existing := filepath.Join(dir, AttachmentsDir, "Hades - cover.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	result, err := DownloadCover(context.Background(), CoverDownloadOptions{URL: server.URL, OutputDir: dir, Title: "Hades"})
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	result, err = DownloadCover(context.Background(), CoverDownloadOptions{URL: server.URL, OutputDir: dir, Title: "Hades", UpdateCovers: true})
	require.NoError(t, err)
	assert.True(t, result.Downloaded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDownloadCoverHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := DownloadCover(context.Background(), CoverDownloadOptions{URL: server.URL, OutputDir: t.TempDir(), Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestDownloadCoverNotAnImage(t *testing.T) {
	server := imageServer(t, []byte("<html>nope</html>"), nil)

	_, err := DownloadCover(context.Background(), CoverDownloadOptions{URL: server.URL, OutputDir: t.TempDir(), Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
