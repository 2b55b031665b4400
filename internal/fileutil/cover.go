package fileutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// AttachmentsDir is the folder next to the notes where covers are stored.
const AttachmentsDir = "attachments"

// DefaultCoverWidth is the widest cover kept on disk; larger images are scaled down.
const DefaultCoverWidth = 600

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// CoverDownloadOptions holds options for downloading cover images.
type CoverDownloadOptions struct {
	URL       string
	OutputDir string
	// Filename defaults to BuildCoverFilename(Title) when empty.
	Filename string
	Title    string
	// UpdateCovers forces re-downloading even if the cover exists.
	UpdateCovers bool
	// MaxWidth of the saved image; 0 means DefaultCoverWidth, negative disables resizing.
	MaxWidth int
	Client   HTTPDoer
}

// CoverDownloadResult holds the result of a cover download operation.
type CoverDownloadResult struct {
	Downloaded bool
	LocalPath  string
	// RelativePath is the vault link target, always with forward slashes.
	RelativePath string
	Filename     string
}

// DownloadCover saves a cover image to <OutputDir>/attachments as JPEG, scaling it down to
// MaxWidth. An empty URL is not an error and yields nil.
func DownloadCover(ctx context.Context, opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}

	filename := opts.Filename
	if filename == "" {
		filename = BuildCoverFilename(opts.Title)
	}

	attachments := filepath.Join(opts.OutputDir, AttachmentsDir)
	if err := os.MkdirAll(attachments, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	result := &CoverDownloadResult{
		LocalPath:    filepath.Join(attachments, filename),
		RelativePath: path.Join(AttachmentsDir, filename),
		Filename:     filename,
	}

	if FileExists(result.LocalPath) && !opts.UpdateCovers {
		slog.Debug("Cover already exists, skipping download", "path", result.LocalPath)
		return result, nil
	}

	if err := fetchAndSave(ctx, opts, result.LocalPath); err != nil {
		return nil, err
	}

	slog.Info("Downloaded cover", "path", result.LocalPath)
	result.Downloaded = true
	return result, nil
}

func fetchAndSave(ctx context.Context, opts CoverDownloadOptions, savePath string) error {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode cover: %w", err)
	}

	maxWidth := opts.MaxWidth
	if maxWidth == 0 {
		maxWidth = DefaultCoverWidth
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("failed to write cover file: %w", err)
	}
	return nil
}

// BuildCoverFilename creates a standard cover filename from a title: "Title - cover.jpg".
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
