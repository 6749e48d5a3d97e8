package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/logging"
	"github.com/retouchlab/internal/store"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newTestContentService(t *testing.T) *ContentService {
	t.Helper()
	gdb := openServiceTestDB(t)
	return NewContentService(store.NewSQLStore(gdb), content.MustLoadDefaults(), logging.Discard())
}

func assertJSONEqual(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g interface{}
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("invalid expected JSON %s: %v", want, err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("invalid actual JSON %s: %v", got, err)
	}
	if !reflect.DeepEqual(w, g) {
		t.Fatalf("JSON mismatch\nwant: %s\n got: %s", want, got)
	}
}
