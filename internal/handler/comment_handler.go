package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Text string `json:"text"`
}

// CreateComment 在指定文章下发表评论。
// 文章必须对当前用户可见，否则与不存在的文章一样返回404。
func (a *API) CreateComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	var payload commentRequest
	if !bindJSON(c, &payload, "请填写评论内容") {
		return
	}

	comment, err := a.comments.Create(currentActorID(c), postID, payload.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "评论发表成功",
		"comment": commentPayload(*comment),
	})
}

// UpdateComment 修改评论内容，仅限评论作者
func (a *API) UpdateComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	var payload commentRequest
	if !bindJSON(c, &payload, "请填写评论内容") {
		return
	}

	comment, err := a.comments.Update(currentActorID(c), id, payload.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "评论已更新",
		"comment": commentPayload(*comment),
	})
}

// DeleteComment 删除评论，仅限评论作者
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := a.comments.Delete(currentActorID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}
