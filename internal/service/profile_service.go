package service

import (
	"github.com/blogium/internal/db"
	"gorm.io/gorm"
)

// ProfileService 组合文章列表与作者策略，提供个人主页数据。
type ProfileService struct {
	db    *gorm.DB
	users *UserService
	posts *PostService
}

// NewProfileService creates a ProfileService instance.
func NewProfileService(gdb *gorm.DB, users *UserService, posts *PostService) *ProfileService {
	return &ProfileService{db: gdb, users: users, posts: posts}
}

// ListPosts returns the posts shown on a user's profile page. The
// owner sees every post they wrote, including drafts, scheduled posts
// and posts in hidden categories.
// Everyone else sees exactly the public subset for that author.
func (s *ProfileService) ListPosts(actorID uint, username string, filter PostFilter) (*db.User, *PostListResult, error) {
	owner, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}

	var result *PostListResult
	if actorID == owner.ID {
		result, err = s.posts.ListOwn(owner.ID, filter)
	} else {
		filter.AuthorID = owner.ID
		result, err = s.posts.ListPublic(filter)
	}
	if err != nil {
		return nil, nil, err
	}
	return owner, result, nil
}

// UpdateBio rewrites the profile text of the acting user.
func (s *ProfileService) UpdateBio(actorID uint, bio string) (*db.User, error) {
	if actorID == AnonymousID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(&db.User{}).
		Where("id = ?", actorID).
		Update("bio", bio).Error; err != nil {
		return nil, err
	}

	var user db.User
	if err := s.db.First(&user, actorID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
