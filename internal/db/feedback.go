package db

import "gorm.io/gorm"

// CollaborateRequest 保存访客通过 about 页提交的合作留言
// 留言是匿名的，不关联任何用户
type CollaborateRequest struct {
	gorm.Model
	Name    string `gorm:"size:200;not null"`
	Email   string `gorm:"size:254;not null"`
	Message string `gorm:"size:500;not null"`
	Read    bool   `gorm:"default:false"`
}
