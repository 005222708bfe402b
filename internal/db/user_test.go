package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&User{}, &About{}, &CollaborateRequest{}, &Card{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	DB = gdb

	return func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestEnsureUserCreatesHashedAccount(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("root-admin", "super-secret"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "root-admin").First(&user).Error; err != nil {
		t.Fatalf("expected user to exist: %v", err)
	}

	if user.Password == "super-secret" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("super-secret")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("repeat-admin", "first-password"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if err := EnsureUser("repeat-admin", "second-password"); err != nil {
		t.Fatalf("second EnsureUser returned error: %v", err)
	}

	var count int64
	if err := DB.Model(&User{}).Where("username = ?", "repeat-admin").Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one account, got %d", count)
	}

	var user User
	if err := DB.Where("username = ?", "repeat-admin").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("first-password")); err != nil {
		t.Error("expected the original password to be kept")
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("  ", ""); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no accounts for blank credentials, got %d", count)
	}
}
