package db

import "gorm.io/gorm"

// About stores the single profile/bio shown on the about page.
// Each user owns at most one entry; the constraint lives in the schema,
// not just in the service layer.
type About struct {
	gorm.Model
	Title        string `gorm:"size:200;uniqueIndex;not null"`
	ProfileImage string `gorm:"size:255;not null;default:placeholder"`
	Content      string `gorm:"type:text;not null"`
	UserID       uint   `gorm:"uniqueIndex;not null"`
	User         User   `gorm:"constraint:OnDelete:CASCADE"`
}
