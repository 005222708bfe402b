package db

import "gorm.io/gorm"

// PlaceholderImage is the sentinel stored when no image was uploaded.
const PlaceholderImage = "placeholder"

// Card is a single index card in a user's personal deck.
// Cards are only ever visible to their owner.
type Card struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	User    User   `gorm:"constraint:OnDelete:CASCADE"`
	Title   string `gorm:"size:200;not null"`
	Content string `gorm:"size:500;not null"`
	Image   string `gorm:"size:255;not null;default:placeholder"`
}
