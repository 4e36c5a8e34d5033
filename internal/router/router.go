package router

import (
	"github.com/blogium/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup 配置 Gin 引擎和路由
func Setup(sessionSecret string, gdb *gorm.DB) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("blogium_session", store))

	api := handler.NewAPI(gdb)
	Register(r, api)

	return r
}

// Register 挂载全部路由，便于测试注入自定义的 API 实例。
func Register(r *gin.Engine, api *handler.API) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
	}

	// 公开读取路径
	r.GET("/posts", api.ShowFeed)
	r.GET("/posts/:id", api.ShowPostDetail)
	r.GET("/categories/:slug/posts", api.ShowCategoryFeed)
	r.GET("/users/:username/posts", api.ShowProfilePosts)
	r.GET("/locations", api.ShowLocations)

	// 需要登录的写路径
	authed := r.Group("")
	authed.Use(handler.AuthRequired())
	{
		authed.POST("/posts", api.CreatePost)
		authed.PUT("/posts/:id", api.UpdatePost)
		authed.DELETE("/posts/:id", api.DeletePost)

		authed.POST("/posts/:id/comments", api.CreateComment)
		authed.PUT("/comments/:id", api.UpdateComment)
		authed.DELETE("/comments/:id", api.DeleteComment)

		authed.PUT("/profile", api.UpdateProfile)
	}
}
