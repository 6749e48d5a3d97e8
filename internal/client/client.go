// Package client talks to the content and upload API on behalf of the
// admin editors.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	ErrVersionConflict = errors.New("section was changed by someone else")
	ErrForeignSection  = errors.New("section is edited on another page")
	ErrValidation      = errors.New("section failed validation")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("authentication required")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status     int
	Message    string            `json:"error"`
	RedirectTo string            `json:"redirectTo"`
	Fields     map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrVersionConflict:
		return e.Status == http.StatusPreconditionFailed
	case ErrForeignSection:
		return e.Status == http.StatusForbidden && e.RedirectTo != ""
	case ErrValidation:
		return e.Status == http.StatusUnprocessableEntity
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Section is a section value with the version it was read at.
type Section struct {
	Data    json.RawMessage
	Version int64
}

// UploadResult is the hosted location of an uploaded image.
type UploadResult struct {
	URL      string
	PublicID string
	Width    int
	Height   int
}

// Client is a thin resty wrapper around the site API.
type Client struct {
	http *resty.Client
}

// Option customizes a Client.
type Option func(*resty.Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(rc *resty.Client) {
		rc.SetTransport(hc.Transport)
		if hc.Jar != nil {
			rc.SetCookieJar(hc.Jar)
		}
	}
}

// WithCookies attaches session cookies to every request.
func WithCookies(cookies ...*http.Cookie) Option {
	return func(rc *resty.Client) {
		rc.SetCookies(cookies)
	}
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func sectionPath(page string) string {
	return "/api/content/" + url.PathEscape(page)
}

// GetSection fetches one section and its version.
func (c *Client) GetSection(ctx context.Context, page, section string) (Section, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("section", section).
		Get(sectionPath(page))
	if err != nil {
		return Section{}, err
	}
	if resp.IsError() {
		return Section{}, apiError(resp)
	}
	return Section{Data: json.RawMessage(resp.Body()), Version: ParseETag(resp.Header().Get("ETag"))}, nil
}

// PutSection saves a section. A non-zero version is sent as If-Match so a
// concurrent edit is rejected instead of overwritten.
func (c *Client) PutSection(ctx context.Context, page, section string, data json.RawMessage, version int64) (Section, error) {
	var echoed struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("section", section).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(data)).
		SetResult(&echoed)
	if version > 0 {
		req.SetHeader("If-Match", FormatETag(version))
	}

	resp, err := req.Put(sectionPath(page))
	if err != nil {
		return Section{}, err
	}
	if resp.IsError() {
		return Section{}, apiError(resp)
	}
	return Section{Data: echoed.Data, Version: ParseETag(resp.Header().Get("ETag"))}, nil
}

// Upload posts an image as multipart form data.
func (c *Client) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (UploadResult, error) {
	var body struct {
		Path      string `json:"path"`
		FilePath  string `json:"filePath"`
		URL       string `json:"url"`
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, r).
		SetFormData(map[string]string{"folder": folder}).
		SetResult(&body).
		Post("/api/upload")
	if err != nil {
		return UploadResult{}, err
	}
	if resp.IsError() {
		return UploadResult{}, apiError(resp)
	}

	hosted := firstNonEmpty(body.SecureURL, body.URL, body.FilePath, body.Path)
	if hosted == "" {
		return UploadResult{}, errors.New("upload response did not include a url")
	}
	return UploadResult{URL: hosted, PublicID: body.PublicID, Width: body.Width, Height: body.Height}, nil
}

// DeleteMedia removes an image by hosted URL or public id.
func (c *Client) DeleteMedia(ctx context.Context, ref string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/media/" + url.PathEscape(ref))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *resty.Response) error {
	apiErr := &APIError{}
	_ = json.Unmarshal(resp.Body(), apiErr)
	apiErr.Status = resp.StatusCode()
	return apiErr
}

// FormatETag renders a section version as a strong entity tag.
func FormatETag(version int64) string {
	return strconv.Quote(strconv.FormatInt(version, 10))
}

// ParseETag extracts the section version from an ETag or If-Match value.
// Unparseable values yield 0.
func ParseETag(tag string) int64 {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "W/")
	tag = strings.Trim(tag, `"`)
	v, err := strconv.ParseInt(tag, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
