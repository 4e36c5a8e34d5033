package db

import (
	"time"

	"gorm.io/gorm"
)

// Post 定义了文章模型。
// CategoryID 与 LocationID 允许为空：未分类的文章不受分类可见性约束。
type Post struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Text        string
	PubDate     time.Time `gorm:"index;not null"`
	IsPublished bool      `gorm:"default:true"`
	UserID      uint      `gorm:"index;not null"`
	User        User
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	LocationID  *uint
	Location    *Location
}

// OwnerID 返回文章作者的用户ID，用于统一的作者校验。
func (p *Post) OwnerID() uint {
	return p.UserID
}
