package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type uploadResponse struct {
	Success   bool   `json:"success"`
	Path      string `json:"path"`
	FilePath  string `json:"filePath"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func TestUploadAndDeleteImage(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	body, contentType := multipartBody(t, "file", "photo.png", pngBytes(t, 3, 2), map[string]string{"folder": "Banner"})
	rec := env.do(t, http.MethodPost, "/api/upload", body, map[string]string{"Content-Type": contentType})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.URL == "" || resp.URL != resp.SecureURL || resp.URL != resp.Path || resp.URL != resp.FilePath {
		t.Fatalf("unexpected upload response: %+v", resp)
	}
	if resp.Width != 3 || resp.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", resp.Width, resp.Height)
	}
	if !strings.HasPrefix(resp.PublicID, "banner/") || !strings.HasSuffix(resp.PublicID, ".png") {
		t.Fatalf("unexpected public id %q", resp.PublicID)
	}
	stored := filepath.Join(env.uploadDir, filepath.FromSlash(resp.PublicID))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("expected uploaded file on disk: %v", err)
	}

	list := env.do(t, http.MethodGet, "/api/media?folder=banner", nil, nil)
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), resp.PublicID) {
		t.Fatalf("expected asset in listing, got %d %s", list.Code, list.Body.String())
	}

	del := env.do(t, http.MethodDelete, "/api/media/"+url.PathEscape(resp.URL), nil, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d: %s", del.Code, del.Body.String())
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err = %v", err)
	}

	again := env.do(t, http.MethodDelete, "/api/media/"+url.PathEscape(resp.URL), nil, nil)
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted asset, got %d", again.Code)
	}
}

func TestUploadAcceptsLegacyImageField(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	body, contentType := multipartBody(t, "image", "photo.png", pngBytes(t, 1, 1), map[string]string{"directory": "team"})
	rec := env.do(t, http.MethodPost, "/api/upload/image", body, map[string]string{"Content-Type": contentType})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.PublicID, "team/") {
		t.Fatalf("expected team folder, got %q", resp.PublicID)
	}
}

func TestUploadRejections(t *testing.T) {
	env := newTestEnv(t, envOptions{maxBytes: 1024})

	cases := []struct {
		name   string
		field  string
		data   []byte
		status int
	}{
		{"not an image", "file", []byte("hello world"), http.StatusBadRequest},
		{"missing file", "other", pngBytes(t, 1, 1), http.StatusBadRequest},
		{"too large", "file", bytes.Repeat([]byte{0x89}, 200<<10), http.StatusRequestEntityTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tc.field, "upload.png", tc.data, nil)
			rec := env.do(t, http.MethodPost, "/api/upload", body, map[string]string{"Content-Type": contentType})
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDeleteMediaRequiresReference(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rec := env.do(t, http.MethodDelete, "/api/media/", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
