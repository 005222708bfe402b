package service

import (
	"fmt"

	"github.com/chaoscards/internal/db"
	"gorm.io/gorm"
)

// FeedbackService stores collaborate requests submitted by visitors.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService returns a new FeedbackService instance.
func NewFeedbackService(gdb *gorm.DB) *FeedbackService {
	return &FeedbackService{db: gdb}
}

// FeedbackInput carries the raw collaborate form fields.
type FeedbackInput struct {
	Name    string
	Email   string
	Message string
}

// Validate trims the fields in place and returns nil or the collected
// per-field errors. It never touches storage.
func (in *FeedbackInput) Validate() FieldErrors {
	errs := FieldErrors{}

	in.Name = checkRequired(errs, "name", in.Name)
	checkMaxLength(errs, "name", in.Name, 200)

	in.Email = checkRequired(errs, "email", in.Email)
	checkMaxLength(errs, "email", in.Email, 254)
	checkEmail(errs, "email", in.Email)

	in.Message = checkRequired(errs, "message", in.Message)
	checkMaxLength(errs, "message", in.Message, 500)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create validates and persists a collaborate request. New requests always
// start unread.
func (s *FeedbackService) Create(input FeedbackInput) (*db.CollaborateRequest, error) {
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	request := db.CollaborateRequest{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("create collaborate request: %w", err)
	}

	return &request, nil
}
