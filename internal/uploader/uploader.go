// Package uploader implements the image picker shared by the admin editors.
package uploader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/retouchlab/internal/client"
)

// DefaultMaxBytes is the client-side size limit.
const DefaultMaxBytes int64 = 5 << 20

// Status is the upload state of the widget.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusError     Status = "error"
)

var (
	ErrBusy        = errors.New("an upload is already in progress")
	ErrInvalidType = errors.New("file is not an image")
	ErrTooLarge    = errors.New("file is too large")
)

// Messages shown to editors.
const (
	MessageInvalidType = "Please select an image file."
	MessageUploadFail  = "Failed to upload image. Please try again."
)

// File is a file picked by the editor.
type File struct {
	Name   string
	Type   string
	Size   int64
	Reader io.Reader
}

// UploadClient posts files to the upload endpoint.
type UploadClient interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (client.UploadResult, error)
}

// State is a snapshot of the widget.
type State struct {
	Status   Status
	Value    string
	PublicID string
	Preview  string
	Error    string
}

// Uploader validates, previews and uploads one image at a time.
type Uploader struct {
	MaxBytes int64
	Folder   string
	Client   UploadClient
	// OnUploaded receives the hosted URL and public id after a successful upload.
	OnUploaded func(url, publicID string)
	// OnChange receives every state transition.
	OnChange func(State)

	mu    sync.Mutex
	state State
}

// New returns an idle uploader showing value.
func New(c UploadClient, folder, value string) *Uploader {
	return &Uploader{
		MaxBytes: DefaultMaxBytes,
		Folder:   folder,
		Client:   c,
		state:    State{Status: StatusIdle, Value: value, Preview: value},
	}
}

func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// CanBrowse reports whether the file picker may be opened.
func (u *Uploader) CanBrowse() bool {
	return u.State().Status != StatusUploading
}

func (u *Uploader) maxBytes() int64 {
	if u.MaxBytes > 0 {
		return u.MaxBytes
	}
	return DefaultMaxBytes
}

// Select validates f, shows a local preview and uploads it. Invalid files
// are rejected before any request is made and the current value is kept.
func (u *Uploader) Select(ctx context.Context, f File) error {
	u.mu.Lock()
	if u.state.Status == StatusUploading {
		u.mu.Unlock()
		return ErrBusy
	}

	limit := u.maxBytes()
	if !strings.HasPrefix(strings.ToLower(f.Type), "image/") {
		u.failLocked(MessageInvalidType)
		return ErrInvalidType
	}
	if f.Size > limit {
		u.failLocked(tooLargeMessage(limit))
		return ErrTooLarge
	}
	if f.Reader == nil {
		u.failLocked(MessageUploadFail)
		return fmt.Errorf("read %s: no content", f.Name)
	}

	u.state.Status = StatusUploading
	u.state.Error = ""
	u.mu.Unlock()

	data, err := io.ReadAll(io.LimitReader(f.Reader, limit+1))
	if err == nil && int64(len(data)) > limit {
		u.fail(tooLargeMessage(limit))
		return ErrTooLarge
	}
	if err != nil {
		u.fail(MessageUploadFail)
		return fmt.Errorf("read %s: %w", f.Name, err)
	}

	u.update(func(s *State) {
		s.Preview = DataURL(f.Type, data)
	})

	result, err := u.Client.Upload(ctx, u.Folder, f.Name, f.Type, bytes.NewReader(data))
	if err != nil {
		u.fail(MessageUploadFail)
		return err
	}

	u.update(func(s *State) {
		s.Status = StatusIdle
		s.Value = result.URL
		s.PublicID = result.PublicID
		s.Preview = result.URL
		s.Error = ""
	})
	if u.OnUploaded != nil {
		u.OnUploaded(result.URL, result.PublicID)
	}
	return nil
}

// failLocked records a rejection. The caller holds u.mu; it is released.
func (u *Uploader) failLocked(message string) {
	u.state.Status = StatusError
	u.state.Error = message
	u.state.Preview = u.state.Value
	snapshot, onChange := u.state, u.OnChange
	u.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}

func (u *Uploader) fail(message string) {
	u.mu.Lock()
	u.failLocked(message)
}

func (u *Uploader) update(fn func(*State)) {
	u.mu.Lock()
	fn(&u.state)
	snapshot, onChange := u.state, u.OnChange
	u.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}

// DataURL encodes data for an inline preview.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func tooLargeMessage(limit int64) string {
	if limit%(1<<20) == 0 {
		return fmt.Sprintf("Image must be smaller than %dMB.", limit>>20)
	}
	return fmt.Sprintf("Image must be smaller than %d bytes.", limit)
}
