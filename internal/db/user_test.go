package db

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:db-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestEnsureUserCreatesHashedAccount(t *testing.T) {
	gdb := openTestDB(t)

	created, err := EnsureUser(gdb, " editor ", "s3cret")
	if err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if !created {
		t.Fatal("expected user to be created")
	}

	var user User
	if err := gdb.Where("username = ?", "editor").First(&user).Error; err != nil {
		t.Fatalf("expected user to exist: %v", err)
	}
	if user.Password == "s3cret" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := EnsureUser(gdb, "editor", "first"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	created, err := EnsureUser(gdb, "editor", "second")
	if err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if created {
		t.Fatal("expected existing user to be kept")
	}

	var count int64
	gdb.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestEnsureUserSkipsEmptyCredentials(t *testing.T) {
	gdb := openTestDB(t)

	created, err := EnsureUser(gdb, "", "password")
	if err != nil || created {
		t.Fatalf("expected no-op, got created=%v err=%v", created, err)
	}
}

func TestContentSectionUniquePerPage(t *testing.T) {
	gdb := openTestDB(t)

	first := ContentSection{Page: "home", Section: "banner", Data: []byte(`{}`), Version: 1}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	dup := ContentSection{Page: "home", Section: "banner", Data: []byte(`{}`), Version: 1}
	if err := gdb.Create(&dup).Error; err == nil {
		t.Fatal("expected unique constraint violation")
	}
	other := ContentSection{Page: "about", Section: "banner", Data: []byte(`{}`), Version: 1}
	if err := gdb.Create(&other).Error; err != nil {
		t.Fatalf("same section name on another page should be allowed: %v", err)
	}
}
