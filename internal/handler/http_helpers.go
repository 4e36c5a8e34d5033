package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/blogium/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(value)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

// respondServiceError 将服务层的哨兵错误统一映射为 HTTP 状态码。
// 授权失败一律返回 403，不做静默跳转。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "文章不存在")
	case errors.Is(err, service.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, "评论不存在")
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "分类不存在")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "用户不存在")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "无权执行此操作")
	case errors.Is(err, service.ErrInvalidPostInput):
		respondError(c, http.StatusBadRequest, "请填写标题与正文")
	case errors.Is(err, service.ErrInvalidCommentInput):
		respondError(c, http.StatusBadRequest, "请填写评论内容")
	case errors.Is(err, service.ErrInvalidFilter):
		respondError(c, http.StatusBadRequest, "不支持的排序方式")
	case errors.Is(err, service.ErrInvalidUserInput):
		respondError(c, http.StatusBadRequest, "请填写用户名与密码")
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "用户名已被占用")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
