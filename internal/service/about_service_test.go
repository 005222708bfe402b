package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/chaoscards/internal/db"
)

func TestSaveAboutCreatesProfile(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAboutService(db.DB)
	owner := createTestUser(t, "about-owner")

	about, err := svc.Save(owner, AboutInput{Title: "About Owner", Content: "# Hello"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if about.ProfileImage != db.PlaceholderImage {
		t.Errorf("expected placeholder image, got %q", about.ProfileImage)
	}
	if about.UserID != owner {
		t.Errorf("expected owner %d, got %d", owner, about.UserID)
	}
}

func TestSaveAboutUpdatesExistingProfile(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAboutService(db.DB)
	owner := createTestUser(t, "about-updater")

	first, err := svc.Save(owner, AboutInput{Title: "First Title", Content: "v1"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	second, err := svc.Save(owner, AboutInput{Title: "Second Title", Content: "v2"})
	if err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected update in place, got new row %d vs %d", second.ID, first.ID)
	}
	if second.Title != "Second Title" || second.Content != "v2" {
		t.Errorf("unexpected updated profile: %+v", second)
	}

	var count int64
	if err := db.DB.Model(&db.About{}).Where("user_id = ?", owner).Count(&count).Error; err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one profile per user, got %d", count)
	}
}

func TestSaveAboutRejectsDuplicateTitle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAboutService(db.DB)
	alice := createTestUser(t, "about-alice")
	bob := createTestUser(t, "about-bob")

	if _, err := svc.Save(alice, AboutInput{Title: "Shared Title", Content: "a"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	_, err := svc.Save(bob, AboutInput{Title: "Shared Title", Content: "b"})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) || !fieldErrs.Has("title") {
		t.Fatalf("expected title clash to surface as field error, got %v", err)
	}
}

func TestSaveAboutRejectsBlankInput(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAboutService(db.DB)
	owner := createTestUser(t, "about-blank")

	_, err := svc.Save(owner, AboutInput{Title: " \t ", Content: "  "})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if !fieldErrs.Has("title") || !fieldErrs.Has("content") {
		t.Fatalf("expected title and content to be flagged, got %v", fieldErrs)
	}
}

func TestRenderContentSanitizesMarkdown(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAboutService(db.DB)
	html, err := svc.RenderContent("# Heading\n\n<script>alert(1)</script>\n\n**bold**")
	if err != nil {
		t.Fatalf("RenderContent returned error: %v", err)
	}

	rendered := string(html)
	if strings.Contains(rendered, "<script>") {
		t.Error("expected script tags to be stripped")
	}
	if !strings.Contains(rendered, "<strong>bold</strong>") {
		t.Errorf("expected markdown to render, got %q", rendered)
	}
}
