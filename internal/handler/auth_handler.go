package handler

import (
	"net/http"

	"github.com/blogium/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// currentActorID 从会话解析当前用户，未登录时返回匿名哨兵。
func currentActorID(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserIDKey).(uint); ok {
		return id
	}
	return service.AnonymousID
}

// AuthRequired 拦截未登录的修改类请求。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentActorID(c) == service.AnonymousID {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Register 创建新账号并建立会话
func (a *API) Register(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "请填写用户名与密码") {
		return
	}

	user, err := a.users.Register(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := saveSessionUser(c, user.ID, user.Username); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

// Login 校验凭据并建立会话
func (a *API) Login(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "请填写用户名与密码") {
		return
	}

	user, err := a.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := saveSessionUser(c, user.ID, user.Username); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

func saveSessionUser(c *gin.Context, userID uint, username string) error {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, userID)
	session.Set(sessionUsernameKey, username)
	return session.Save()
}
