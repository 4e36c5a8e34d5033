package service

import (
	"errors"
	"strings"
	"time"

	"github.com/blogium/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitService 负责文章浏览量的去重统计。
type VisitService struct {
	db *gorm.DB
}

// NewVisitService creates a VisitService instance.
func NewVisitService(gdb *gorm.DB) *VisitService {
	return &VisitService{db: gdb}
}

// Record stores one view per (post, visitor) pair and returns the
// post's unique view count.
func (s *VisitService) Record(postID uint, visitorID string, now time.Time) (int64, error) {
	if postID == 0 || strings.TrimSpace(visitorID) == "" {
		return 0, errors.New("invalid visitor or post id")
	}

	visit := db.PostVisit{PostID: postID, VisitorID: visitorID, ViewedAt: now}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "visitor_id"}},
		DoNothing: true,
	}).Create(&visit).Error; err != nil {
		return 0, err
	}

	return s.Count(postID)
}

// Count returns the number of distinct visitors of a post.
func (s *VisitService) Count(postID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&db.PostVisit{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
