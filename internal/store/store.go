// Package store persists page documents section by section.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrVersionConflict is returned when a conditional write targets a
	// section that changed since the caller read it.
	ErrVersionConflict = errors.New("section version conflict")
)

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MongoStore)(nil)
)

// Section is one stored section of a page document.
type Section struct {
	Page      string
	Name      string
	Data      json.RawMessage
	Version   int64
	UpdatedAt time.Time
}

// Store is the keyed JSON document store behind the content API.
type Store interface {
	// Document returns every stored section of page keyed by name.
	Document(ctx context.Context, page string) (map[string]Section, error)
	// Section returns one section and whether it exists.
	Section(ctx context.Context, page, name string) (Section, bool, error)
	// Seed stores data only when the section does not exist yet and
	// returns whatever is stored afterwards.
	Seed(ctx context.Context, page, name string, data json.RawMessage) (Section, error)
	// Put overwrites the section. A non-zero expectedVersion makes the
	// write conditional on the stored version.
	Put(ctx context.Context, page, name string, data json.RawMessage, expectedVersion int64) (Section, error)
	// Replace swaps the whole document for sections. Stored sections
	// missing from sections are deleted unless keep reports true.
	Replace(ctx context.Context, page string, sections map[string]json.RawMessage, keep func(name string) bool) error
	Close(ctx context.Context) error
}
