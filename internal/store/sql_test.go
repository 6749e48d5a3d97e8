package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/retouchlab/internal/db"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	gdb, err := db.Open(fmt.Sprintf("file:store_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s := NewSQLStore(gdb)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Seed(ctx, "home", "hero", json.RawMessage(`{"title":"A"}`))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := s.Seed(ctx, "home", "hero", json.RawMessage(`{"title":"B"}`))
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}

	if string(second.Data) != `{"title":"A"}` {
		t.Fatalf("expected first seed to win, got %s", second.Data)
	}
	if first.Version != 1 || second.Version != 1 {
		t.Fatalf("unexpected versions %d %d", first.Version, second.Version)
	}
}

func TestPutVersioning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Put(ctx, "about", "story", json.RawMessage(`{"content":"v1"}`), 0)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if created.Version != 1 {
		t.Fatalf("expected version 1, got %d", created.Version)
	}

	updated, err := s.Put(ctx, "about", "story", json.RawMessage(`{"content":"v2"}`), created.Version)
	if err != nil {
		t.Fatalf("conditional put: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}

	tests := []struct {
		name     string
		section  string
		expected int64
	}{
		{name: "stale version", section: "story", expected: 1},
		{name: "missing section", section: "mission", expected: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Put(ctx, "about", tt.section, json.RawMessage(`{}`), tt.expected)
			if !errors.Is(err, ErrVersionConflict) {
				t.Fatalf("expected ErrVersionConflict, got %v", err)
			}
		})
	}

	got, ok, err := s.Section(ctx, "about", "story")
	if err != nil || !ok {
		t.Fatalf("section: ok=%v err=%v", ok, err)
	}
	if string(got.Data) != `{"content":"v2"}` {
		t.Fatalf("unexpected data %s", got.Data)
	}

	unconditional, err := s.Put(ctx, "about", "story", json.RawMessage(`{"content":"v3"}`), 0)
	if err != nil {
		t.Fatalf("unconditional put: %v", err)
	}
	if unconditional.Version != 3 {
		t.Fatalf("expected version 3, got %d", unconditional.Version)
	}
}

func TestSectionMissing(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.Section(context.Background(), "home", "nope")
	if err != nil {
		t.Fatalf("section: %v", err)
	}
	if ok {
		t.Fatal("expected missing section")
	}
}

func TestReplaceKeepsProtectedSections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"hero", "story", "sponsors"} {
		if _, err := s.Put(ctx, "about", name, json.RawMessage(`{"old":true}`), 0); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}

	err := s.Replace(ctx, "about", map[string]json.RawMessage{
		"hero":    json.RawMessage(`{"title":"new"}`),
		"mission": json.RawMessage(`{"content":"m"}`),
	}, func(name string) bool { return name == "sponsors" })
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	doc, err := s.Document(ctx, "about")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if len(doc) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc))
	}
	if _, ok := doc["story"]; ok {
		t.Fatal("story should have been removed")
	}
	if string(doc["sponsors"].Data) != `{"old":true}` {
		t.Fatalf("sponsors changed: %s", doc["sponsors"].Data)
	}
	if doc["hero"].Version != 2 || string(doc["hero"].Data) != `{"title":"new"}` {
		t.Fatalf("unexpected hero %+v", doc["hero"])
	}
	if doc["mission"].Version != 1 {
		t.Fatalf("unexpected mission version %d", doc["mission"].Version)
	}
}

func TestDocumentScopedToPage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, "home", "hero", json.RawMessage(`{}`), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put(ctx, "about", "hero", json.RawMessage(`{}`), 0); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Document(ctx, "home")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != 1 {
		t.Fatalf("expected one section, got %d", len(doc))
	}
}
