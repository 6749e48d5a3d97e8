// Package editor implements the form-backed section editors of the admin
// panel: load a section, edit it through copy-on-write helpers and save it
// back.
package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/retouchlab/internal/client"
	"github.com/retouchlab/internal/content"
)

// SuccessDisplay is how long the saved banner stays visible.
const SuccessDisplay = 3 * time.Second

var (
	ErrNotLoaded   = errors.New("section is not loaded")
	ErrInvalid     = errors.New("section has invalid fields")
	ErrNotAList    = errors.New("field is not a list")
	ErrOutOfRange  = errors.New("list index out of range")
	ErrItemMissing = errors.New("list item not found")
)

// MessageFixFields is shown when local validation blocks a save.
const MessageFixFields = "Please fix the highlighted fields."

// SectionClient loads and saves section values.
type SectionClient interface {
	GetSection(ctx context.Context, page, section string) (client.Section, error)
	PutSection(ctx context.Context, page, section string, data json.RawMessage, version int64) (client.Section, error)
}

// State is an immutable snapshot of an editor. Data maps are never
// modified after they are published.
type State struct {
	Data        map[string]interface{}
	Version     int64
	Loading     bool
	Saving      bool
	Error       string
	SaveSuccess bool
	FieldErrors map[string]string
}

// Editor edits one section of one page.
type Editor struct {
	Page    string
	Section string
	Label   string
	Client  SectionClient

	// Templates builds new list items keyed by list field name.
	Templates map[string]func() map[string]interface{}
	// Now stamps new list items.
	Now func() time.Time
	// AfterFunc schedules the success banner reset.
	AfterFunc func(d time.Duration, fn func())

	mu         sync.Mutex
	state      State
	successGen int
}

// New returns an editor with the built-in list templates for page/section.
func New(c SectionClient, page, section, label string) *Editor {
	return &Editor{
		Page:      page,
		Section:   section,
		Label:     label,
		Client:    c,
		Templates: TemplatesFor(page, section),
		Now:       time.Now,
		AfterFunc: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		state:     State{Loading: true},
	}
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Load fetches the section.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	e.state.Loading = true
	e.mu.Unlock()

	sec, err := e.Client.GetSection(ctx, e.Page, e.Section)
	var data map[string]interface{}
	if err == nil {
		data, err = decode(sec.Data)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Loading = false
	if err != nil {
		e.state.Error = fmt.Sprintf("Failed to load %s. Please try again.", e.Label)
		return err
	}
	e.state.Data = data
	e.state.Version = sec.Version
	e.state.Error = ""
	return nil
}

func decode(raw json.RawMessage) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return data, nil
}

func (e *Editor) apply(fn func(map[string]interface{}) (map[string]interface{}, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Data == nil {
		return ErrNotLoaded
	}
	next, err := fn(e.state.Data)
	if err != nil {
		return err
	}
	e.state.Data = next
	return nil
}

// SetField overwrites one top-level key.
func (e *Editor) SetField(key string, value interface{}) error {
	return e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		return with(data, key, value), nil
	})
}

// SetPath overwrites a nested key, copying every map on the way down.
// Missing intermediate objects are created.
func (e *Editor) SetPath(path []string, value interface{}) error {
	if len(path) == 0 {
		return errors.New("empty path")
	}
	return e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		return setPath(data, path, value), nil
	})
}

func setPath(data map[string]interface{}, path []string, value interface{}) map[string]interface{} {
	if len(path) == 1 {
		return with(data, path[0], value)
	}
	child, _ := data[path[0]].(map[string]interface{})
	if child == nil {
		child = map[string]interface{}{}
	}
	return with(data, path[0], setPath(child, path[1:], value))
}

// SetImage stores an image reference in its canonical {url, publicId} form.
func (e *Editor) SetImage(path []string, url, publicID string) error {
	return e.SetPath(path, map[string]interface{}{"url": url, "publicId": publicID})
}

// AddItem appends a new item built from the list template. The item gets
// a millisecond timestamp id.
func (e *Editor) AddItem(listKey string) (interface{}, error) {
	item := map[string]interface{}{}
	if tmpl, ok := e.Templates[listKey]; ok {
		item = tmpl()
	}
	return e.AddItemWith(listKey, item)
}

// AddItemWith appends item, assigning an id when it has none.
func (e *Editor) AddItemWith(listKey string, item map[string]interface{}) (interface{}, error) {
	entry := copyMap(item)
	if _, ok := entry["id"]; !ok {
		entry["id"] = e.Now().UnixMilli()
	}
	err := e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		list, err := listAt(data, listKey)
		if err != nil {
			return nil, err
		}
		next := make([]interface{}, len(list), len(list)+1)
		copy(next, list)
		next = append(next, entry)
		return with(data, listKey, next), nil
	})
	if err != nil {
		return nil, err
	}
	return entry["id"], nil
}

// UpdateItem sets one field of the item at index.
func (e *Editor) UpdateItem(listKey string, index int, field string, value interface{}) error {
	return e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		list, err := listAt(data, listKey)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(list) {
			return nil, ErrOutOfRange
		}
		item, _ := list[index].(map[string]interface{})
		if item == nil {
			item = map[string]interface{}{}
		}
		next := make([]interface{}, len(list))
		copy(next, list)
		next[index] = with(item, field, value)
		return with(data, listKey, next), nil
	})
}

// RemoveItem removes the item at index.
func (e *Editor) RemoveItem(listKey string, index int) error {
	return e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		list, err := listAt(data, listKey)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(list) {
			return nil, ErrOutOfRange
		}
		return with(data, listKey, without(list, index)), nil
	})
}

// RemoveItemByID removes the first item whose id matches.
func (e *Editor) RemoveItemByID(listKey string, id interface{}) error {
	return e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		list, err := listAt(data, listKey)
		if err != nil {
			return nil, err
		}
		for i, raw := range list {
			item, ok := raw.(map[string]interface{})
			if ok && sameID(item["id"], id) {
				return with(data, listKey, without(list, i)), nil
			}
		}
		return nil, ErrItemMissing
	})
}

// Validate checks the current data against the shared section schema
// and records per-field messages.
func (e *Editor) Validate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateLocked()
}

func (e *Editor) validateLocked() bool {
	raw, err := json.Marshal(e.state.Data)
	if err != nil {
		e.state.FieldErrors = map[string]string{"_": err.Error()}
		return false
	}
	var verr *content.ValidationError
	if errors.As(content.ValidateSection(e.Page, e.Section, raw), &verr) {
		e.state.FieldErrors = verr.Fields
		return false
	}
	e.state.FieldErrors = nil
	return true
}

// Save puts the current data. On success the editor adopts the server's
// echo and shows the success flag for SuccessDisplay.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.state.Data == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	if !e.validateLocked() {
		e.state.Error = MessageFixFields
		e.mu.Unlock()
		return ErrInvalid
	}
	payload, err := json.Marshal(e.state.Data)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	version := e.state.Version
	e.state.Saving = true
	e.state.SaveSuccess = false
	e.mu.Unlock()

	saved, err := e.Client.PutSection(ctx, e.Page, e.Section, payload, version)
	var echoed map[string]interface{}
	if err == nil && len(saved.Data) > 0 {
		echoed, err = decode(saved.Data)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Saving = false
	if err != nil {
		e.state.Error = e.saveErrorMessage(err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			e.state.FieldErrors = apiErr.Fields
		}
		return err
	}

	if echoed != nil {
		e.state.Data = echoed
	}
	if saved.Version > 0 {
		e.state.Version = saved.Version
	}
	e.state.Error = ""
	e.state.SaveSuccess = true
	e.successGen++
	gen := e.successGen
	e.AfterFunc(SuccessDisplay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.successGen == gen {
			e.state.SaveSuccess = false
		}
	})
	return nil
}

func (e *Editor) saveErrorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrVersionConflict):
		return fmt.Sprintf("%s was changed by someone else. Reload to see the latest version.", e.Label)
	case errors.Is(err, client.ErrForeignSection):
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("%s is edited at %s.", e.Label, apiErr.RedirectTo)
		}
	case errors.Is(err, client.ErrValidation):
		return MessageFixFields
	}
	return fmt.Sprintf("Failed to save %s. Please try again.", e.Label)
}

// Payload returns the JSON Save would send.
func (e *Editor) Payload() (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Data == nil {
		return nil, ErrNotLoaded
	}
	return json.Marshal(e.state.Data)
}

func listAt(data map[string]interface{}, key string) ([]interface{}, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, ErrNotAList
	}
	return list, nil
}

func with(data map[string]interface{}, key string, value interface{}) map[string]interface{} {
	next := copyMap(data)
	next[key] = value
	return next
}

func copyMap(data map[string]interface{}) map[string]interface{} {
	next := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		next[k] = v
	}
	return next
}

func without(list []interface{}, index int) []interface{} {
	next := make([]interface{}, 0, len(list)-1)
	next = append(next, list[:index]...)
	return append(next, list[index+1:]...)
}

func sameID(a, b interface{}) bool {
	return idString(a) == idString(b)
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
