package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestLoggerIgnoresMissingRecords(t *testing.T) {
	out := &recordingWriter{}
	dsn := fmt.Sprintf("file:db-logger-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newLogger(out)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	out.lines = nil

	var row ContentSection
	err = gdb.Where("page = ? AND section = ?", "home", "hero").First(&row).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(out.lines) != 0 {
		t.Fatalf("missing records should not be logged, got %q", out.lines)
	}

	if err := gdb.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected an error for an unknown table")
	}
	if len(out.lines) == 0 {
		t.Fatal("query failures should still be logged")
	}
}
