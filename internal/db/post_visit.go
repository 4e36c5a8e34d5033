package db

import "time"

// PostVisit 记录访客层面的浏览历史，用于浏览量去重。
type PostVisit struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;uniqueIndex:idx_post_visitor"`
	VisitorID string `gorm:"size:64;uniqueIndex:idx_post_visitor"`
	ViewedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (PostVisit) TableName() string {
	return "post_visits"
}
