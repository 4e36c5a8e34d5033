package handler

import (
	"net/http"

	"github.com/blogium/internal/service"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Bio string `json:"bio"`
}

// ShowProfilePosts 返回用户主页的文章列表。
// 主页主人能看到自己的全部文章（包括草稿与定时发布），访客只能看到公开子集。
func (a *API) ShowProfilePosts(c *gin.Context) {
	filter := service.PostFilter{
		Page:    parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage: parsePositiveInt(c.DefaultQuery("per_page", "10"), 10),
	}

	owner, result, err := a.profiles.ListPosts(currentActorID(c), c.Param("username"), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := feedPayload(result)
	payload["profile"] = gin.H{
		"username": owner.Username,
		"bio":      owner.Bio,
	}
	c.JSON(http.StatusOK, payload)
}

// UpdateProfile 更新当前用户的简介
func (a *API) UpdateProfile(c *gin.Context) {
	var payload profileRequest
	if !bindJSON(c, &payload, "请填写简介内容") {
		return
	}

	user, err := a.profiles.UpdateBio(currentActorID(c), payload.Bio)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "简介已更新",
		"profile": gin.H{"username": user.Username, "bio": user.Bio},
	})
}
