package handler

import (
	"net/http"
	"time"

	"github.com/blogium/internal/service"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	CategoryID  *uint      `json:"categoryId"`
	LocationID  *uint      `json:"locationId"`
	PubDate     *time.Time `json:"pubDate"`
	IsPublished *bool      `json:"isPublished"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
		PubDate:     r.PubDate,
		IsPublished: r.IsPublished,
	}
}

// CreatePost 创建新文章，作者取自当前会话
func (a *API) CreatePost(c *gin.Context) {
	var payload postRequest
	if !bindJSON(c, &payload, "请填写完整的文章信息") {
		return
	}

	post, err := a.posts.Create(currentActorID(c), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "文章创建成功",
		"post":    postPayload(post),
	})
}

// UpdatePost 更新文章，仅限作者本人
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload postRequest
	if !bindJSON(c, &payload, "请填写完整的文章信息") {
		return
	}

	post, err := a.posts.Update(currentActorID(c), id, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "文章已更新",
		"post":    postPayload(post),
	})
}

// DeletePost 删除文章及其评论，仅限作者本人
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.Delete(currentActorID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}
