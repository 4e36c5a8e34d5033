package handler

import (
	"github.com/blogium/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	users      *service.UserService
	posts      *service.PostService
	comments   *service.CommentService
	categories *service.CategoryService
	locations  *service.LocationService
	profiles   *service.ProfileService
	visits     *service.VisitService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	users := service.NewUserService(gdb)
	posts := service.NewPostService(gdb)

	return &API{
		db:         gdb,
		users:      users,
		posts:      posts,
		comments:   service.NewCommentService(gdb, posts),
		categories: service.NewCategoryService(gdb),
		locations:  service.NewLocationService(gdb),
		profiles:   service.NewProfileService(gdb, users, posts),
		visits:     service.NewVisitService(gdb),
	}
}

// WithClock 替换可见性判断的时间源，供测试注入固定时间。
func (a *API) WithClock(c service.Clock) *API {
	a.posts.WithClock(c)
	return a
}
