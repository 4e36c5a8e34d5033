package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/blogium/internal/db"
	"github.com/blogium/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	visitorCookieName   = "bg_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ShowFeed 返回首页的公开文章流，支持分类与分页约束。
func (a *API) ShowFeed(c *gin.Context) {
	filter := feedFilterFromQuery(c)

	result, err := a.posts.ListPublic(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedPayload(result))
}

// ShowCategoryFeed 返回指定分类下的公开文章流。
// 未发布的分类与不存在的分类一样返回404。
func (a *API) ShowCategoryFeed(c *gin.Context) {
	category, err := a.categories.GetPublished(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filter := feedFilterFromQuery(c)
	filter.CategorySlug = category.Slug

	result, err := a.posts.ListPublic(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := feedPayload(result)
	payload["category"] = gin.H{
		"title":       category.Title,
		"description": category.Description,
		"slug":        category.Slug,
	}
	c.JSON(http.StatusOK, payload)
}

// ShowPostDetail renders a specific post with markdown content, its
// full comment thread and the view counter. Authors see their own
// hidden posts here; everyone else gets 404 for anything not public.
func (a *API) ShowPostDetail(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	post, err := a.posts.Resolve(currentActorID(c), postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comments, err := a.comments.ListForPost(post.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取评论失败")
		return
	}

	visitorID := a.ensureVisitorID(c)
	viewCount, visitErr := a.visits.Record(post.ID, visitorID, time.Now().UTC())
	if visitErr != nil {
		c.Error(visitErr) // 不中断渲染，但记录错误
	}

	htmlContent, err := renderMarkdown(post.Text)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "渲染内容失败")
		return
	}

	commentItems := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		commentItems = append(commentItems, commentPayload(comment))
	}

	payload := postPayload(post)
	payload["content"] = htmlContent
	payload["comments"] = commentItems
	payload["viewCount"] = viewCount

	c.JSON(http.StatusOK, gin.H{"post": payload})
}

// ShowLocations 返回已发布的地点目录。
func (a *API) ShowLocations(c *gin.Context) {
	locations, err := a.locations.ListPublished()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取地点失败")
		return
	}

	items := make([]gin.H, 0, len(locations))
	for _, location := range locations {
		items = append(items, gin.H{"id": location.ID, "name": location.Name})
	}
	c.JSON(http.StatusOK, gin.H{"locations": items})
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}

func feedFilterFromQuery(c *gin.Context) service.PostFilter {
	return service.PostFilter{
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Sort:         strings.TrimSpace(c.Query("sort")),
		Page:         parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:      parsePositiveInt(c.DefaultQuery("per_page", "10"), 10),
	}
}

func feedPayload(result *service.PostListResult) gin.H {
	items := make([]gin.H, 0, len(result.Posts))
	for i := range result.Posts {
		item := postPayload(&result.Posts[i].Post)
		item["commentCount"] = result.Posts[i].CommentCount
		items = append(items, item)
	}

	return gin.H{
		"posts":      items,
		"total":      result.Total,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"totalPages": result.TotalPages,
	}
}

func postPayload(post *db.Post) gin.H {
	payload := gin.H{
		"id":          post.ID,
		"title":       post.Title,
		"text":        post.Text,
		"pubDate":     post.PubDate,
		"isPublished": post.IsPublished,
		"author":      post.User.Username,
		"createdAt":   post.CreatedAt,
	}
	if post.Category != nil {
		payload["category"] = gin.H{"title": post.Category.Title, "slug": post.Category.Slug}
	}
	if post.Location != nil {
		payload["location"] = post.Location.Name
	}
	return payload
}

func commentPayload(comment db.Comment) gin.H {
	return gin.H{
		"id":        comment.ID,
		"text":      comment.Text,
		"author":    comment.User.Username,
		"createdAt": comment.CreatedAt,
	}
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
