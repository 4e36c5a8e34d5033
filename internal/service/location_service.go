package service

import (
	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

// LocationService 提供发布地点目录的查询。
// 地点的发布状态只决定目录展示，从不影响文章可见性。
type LocationService struct {
	db *gorm.DB
}

// NewLocationService creates a LocationService instance.
func NewLocationService(gdb *gorm.DB) *LocationService {
	return &LocationService{db: gdb}
}

// ListPublished returns published locations ordered by name.
func (s *LocationService) ListPublished() ([]db.Location, error) {
	var locations []db.Location
	if err := s.db.
		Where("is_published = ?", true).
		Order("name ASC, id ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
