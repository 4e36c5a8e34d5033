package db

import "gorm.io/gorm"

// Location 定义了发布地点模型。
// 地点只影响地点目录的展示，从不参与文章可见性判断。
type Location struct {
	gorm.Model
	Name        string `gorm:"not null"`
	IsPublished bool   `gorm:"default:true"`
}
