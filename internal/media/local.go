package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalHost writes files below Dir and serves them under URLPath.
type LocalHost struct {
	Dir     string
	URLPath string
}

// NewLocalHost creates the upload directory when missing.
func NewLocalHost(dir, urlPath string) (*LocalHost, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalHost{Dir: dir, URLPath: urlPath}, nil
}

func (h *LocalHost) Name() string { return "local" }

func (h *LocalHost) path(key string) (string, string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(h.Dir, filepath.FromSlash(cleaned)), nil
}

func (h *LocalHost) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (Object, error) {
	cleaned, target, err := h.path(key)
	if err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Object{}, fmt.Errorf("create media folder: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return Object{}, fmt.Errorf("create media file: %w", err)
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return Object{}, fmt.Errorf("write media file: %w", err)
	}

	return Object{Key: cleaned, URL: joinURL(h.URLPath, cleaned), Size: written}, nil
}

func (h *LocalHost) Delete(_ context.Context, key string) error {
	_, target, err := h.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

func (h *LocalHost) KeyFromURL(rawURL string) (string, bool) {
	return trimURLPrefix(rawURL, h.URLPath)
}
