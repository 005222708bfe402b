package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/chaoscards/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// AboutService maintains the profile shown on the about page.
type AboutService struct {
	db *gorm.DB
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// AboutInput represents fields accepted when saving the about profile.
type AboutInput struct {
	Title   string
	Content string
	Image   string
}

// Validate trims the text fields in place and returns nil or the collected
// per-field errors.
func (in *AboutInput) Validate() FieldErrors {
	errs := FieldErrors{}

	in.Title = checkRequired(errs, "title", in.Title)
	checkMaxLength(errs, "title", in.Title, 200)

	in.Content = checkRequired(errs, "content", in.Content)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Latest returns the most recently updated profile, or nil when the site
// has none yet.
func (s *AboutService) Latest() (*db.About, error) {
	var about db.About
	if err := s.db.Order("updated_at desc").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load about: %w", err)
	}
	return &about, nil
}

// ForUser returns the profile owned by the user, or nil when none exists.
func (s *AboutService) ForUser(userID uint) (*db.About, error) {
	var about db.About
	if err := s.db.Where("user_id = ?", userID).First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load about for user: %w", err)
	}
	return &about, nil
}

// Save creates or updates the caller's profile. The unique-title invariant
// is re-checked here before touching the row, so a clash surfaces as a
// field error instead of a bare constraint violation from the store.
func (s *AboutService) Save(userID uint, input AboutInput) (*db.About, error) {
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	var about db.About
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var clashes int64
		if err := tx.Model(&db.About{}).
			Where("title = ? AND user_id <> ?", input.Title, userID).
			Count(&clashes).Error; err != nil {
			return err
		}
		if clashes > 0 {
			errs := FieldErrors{}
			errs.Add("title", "This title is already in use.")
			return errs
		}

		err := tx.Where("user_id = ?", userID).First(&about).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			about = db.About{
				UserID:       userID,
				Title:        input.Title,
				Content:      input.Content,
				ProfileImage: db.PlaceholderImage,
			}
			if image := strings.TrimSpace(input.Image); image != "" {
				about.ProfileImage = image
			}
			return tx.Create(&about).Error
		}

		about.Title = input.Title
		about.Content = input.Content
		if image := strings.TrimSpace(input.Image); image != "" {
			about.ProfileImage = image
		}
		return tx.Save(&about).Error
	})
	if err != nil {
		var fieldErrs FieldErrors
		if errors.As(err, &fieldErrs) {
			return nil, fieldErrs
		}
		return nil, fmt.Errorf("save about: %w", err)
	}

	return &about, nil
}

// RenderContent converts the stored markdown to sanitized HTML ready for
// template embedding.
func (s *AboutService) RenderContent(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render about content: %w", err)
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
