package db

import "gorm.io/gorm"

// Comment 定义了评论模型，评论的可见性始终继承其所属文章
type Comment struct {
	gorm.Model
	Text   string `gorm:"not null"`
	PostID uint   `gorm:"index;not null"`
	UserID uint   `gorm:"index;not null"`
	User   User
}

// OwnerID 返回评论作者的用户ID，用于统一的作者校验。
func (c *Comment) OwnerID() uint {
	return c.UserID
}
