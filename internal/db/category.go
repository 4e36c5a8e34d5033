package db

import "gorm.io/gorm"

// Category 定义了文章分类模型，未发布的分类会隐藏其下的所有文章
type Category struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Slug        string `gorm:"unique;not null"`
	IsPublished bool   `gorm:"default:true"`
}
