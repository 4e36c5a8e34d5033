package service

import (
	"errors"
	"strings"

	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

// ErrCategoryNotFound 在分类不存在或未发布时返回
var ErrCategoryNotFound = errors.New("category not found")

// CategoryService resolves categories for the public category feeds.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// GetPublished returns the published category with the given slug. An
// unknown slug and an unpublished category are both
// ErrCategoryNotFound, so hidden categories cannot be probed.
func (s *CategoryService) GetPublished(slug string) (*db.Category, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, ErrCategoryNotFound
	}

	var category db.Category
	if err := s.db.
		Where("slug = ? AND is_published = ?", trimmed, true).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListPublished returns published categories ordered by title, for
// navigation menus.
func (s *CategoryService) ListPublished() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.
		Where("is_published = ?", true).
		Order("title ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
