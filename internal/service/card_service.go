package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chaoscards/internal/db"
	"gorm.io/gorm"
)

// ErrCardNotFound 在卡片不存在或不属于请求者时返回。
// 两种情况刻意不做区分，避免泄露其他用户卡片的存在性。
var ErrCardNotFound = errors.New("card not found")

// DefaultPageSize is the card list page size.
const DefaultPageSize = 10

// CardService wraps card related database operations. Every query is scoped
// to the owning user.
type CardService struct {
	db *gorm.DB
}

// NewCardService creates a CardService instance.
func NewCardService(gdb *gorm.DB) *CardService {
	return &CardService{db: gdb}
}

// CardInput represents fields accepted when creating or updating a card.
type CardInput struct {
	Title   string
	Content string
	Image   string
}

// Validate trims the text fields in place and returns nil or the collected
// per-field errors.
func (in *CardInput) Validate() FieldErrors {
	errs := FieldErrors{}

	in.Title = checkRequired(errs, "title", in.Title)
	checkMaxLength(errs, "title", in.Title, 200)

	in.Content = checkRequired(errs, "content", in.Content)
	checkMaxLength(errs, "content", in.Content, 500)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CardListResult aggregates paginated list data.
type CardListResult struct {
	Cards       []db.Card
	Total       int64
	Page        int
	PerPage     int
	TotalPages  int
	IsPaginated bool
}

// ListOwned returns one page of the user's cards, newest first.
// An out-of-range page is clamped to the last page.
func (s *CardService) ListOwned(userID uint, page, perPage int) (*CardListResult, error) {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	result := &CardListResult{PerPage: perPage}

	if err := s.db.Model(&db.Card{}).Where("user_id = ?", userID).Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(perPage) - 1) / int64(perPage))
	}
	if page > result.TotalPages {
		page = result.TotalPages
	}
	result.Page = page
	result.IsPaginated = result.Total > int64(perPage)

	offset := (page - 1) * perPage
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(perPage).Offset(offset).
		Find(&result.Cards).Error; err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return result, nil
}

// GetOwned fetches a card by id on behalf of a user. The id and the owner
// are checked in a single query; a missing card and someone else's card are
// indistinguishable to the caller.
func (s *CardService) GetOwned(userID, id uint) (*db.Card, error) {
	var card db.Card
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &card, nil
}

// Create validates and persists a new card for the user.
func (s *CardService) Create(userID uint, input CardInput) (*db.Card, error) {
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = db.PlaceholderImage
	}

	card := db.Card{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
		Image:   image,
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	return &card, nil
}

// Update applies edits to an owned card. The edit is all-or-nothing: a
// validation failure or a lost ownership race leaves the stored record
// untouched. CreatedAt is never rewritten.
func (s *CardService) Update(userID, id uint, input CardInput) (*db.Card, error) {
	var card db.Card
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Ownership is checked before anything else; validation must not
		// reveal whether the card exists.
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		if errs := input.Validate(); errs != nil {
			return errs
		}

		card.Title = input.Title
		card.Content = input.Content
		if image := strings.TrimSpace(input.Image); image != "" {
			card.Image = image
		}

		return tx.Save(&card).Error
	})
	if err != nil {
		var fieldErrs FieldErrors
		switch {
		case errors.Is(err, ErrCardNotFound):
			return nil, ErrCardNotFound
		case errors.As(err, &fieldErrs):
			return nil, fieldErrs
		default:
			return nil, fmt.Errorf("update card: %w", err)
		}
	}

	return &card, nil
}

// Delete removes an owned card. The ownership check and the delete are one
// conditional statement, so a concurrent delete simply reports not found.
func (s *CardService) Delete(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&db.Card{})
	if result.Error != nil {
		return fmt.Errorf("delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Draw picks one of the user's cards uniformly at random. A nil card with a
// nil error means the draw was attempted against an empty deck.
func (s *CardService) Draw(userID uint) (*db.Card, error) {
	var cards []db.Card
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("load cards for draw: %w", err)
	}

	if len(cards) == 0 {
		return nil, nil
	}

	return &cards[rand.IntN(len(cards))], nil
}
