package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogium/internal/db"
	"github.com/blogium/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupHandlerTest(t *testing.T, name string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Category{}, &db.Location{}, &db.Post{}, &db.Comment{}, &db.PostVisit{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	api := NewAPI(gdb).WithClock(service.FixedClock(handlerNow))

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("blogium_session", store))

	r.POST("/auth/register", api.Register)
	r.POST("/auth/login", api.Login)
	r.POST("/auth/logout", api.Logout)

	r.GET("/posts", api.ShowFeed)
	r.GET("/posts/:id", api.ShowPostDetail)
	r.GET("/categories/:slug/posts", api.ShowCategoryFeed)
	r.GET("/users/:username/posts", api.ShowProfilePosts)
	r.GET("/locations", api.ShowLocations)

	authed := r.Group("")
	authed.Use(AuthRequired())
	{
		authed.POST("/posts", api.CreatePost)
		authed.PUT("/posts/:id", api.UpdatePost)
		authed.DELETE("/posts/:id", api.DeletePost)
		authed.POST("/posts/:id/comments", api.CreateComment)
		authed.PUT("/comments/:id", api.UpdateComment)
		authed.DELETE("/comments/:id", api.DeleteComment)
		authed.PUT("/profile", api.UpdateProfile)
	}

	return r, gdb
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerAndLogin 注册一个新账号并返回后续请求使用的会话 Cookie。
func registerAndLogin(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": username,
		"password": username + "-pw",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", username, w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func seedPost(t *testing.T, gdb *gorm.DB, username string, published bool, pubDate time.Time) (*db.User, *db.Post) {
	t.Helper()

	var user db.User
	if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("load user %s: %v", username, err)
	}

	post := db.Post{
		Title:       "测试文章",
		Text:        "# 标题\n正文内容",
		PubDate:     pubDate,
		IsPublished: published,
		UserID:      user.ID,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &user, &post
}

func TestAuthRequiredBlocksAnonymousMutation(t *testing.T) {
	r, _ := setupHandlerTest(t, "handler-auth")

	w := performRequest(t, r, http.MethodPost, "/posts", gin.H{"title": "t", "text": "x"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestShowPostDetailHiddenFromAnonymousVisibleToAuthor(t *testing.T) {
	r, gdb := setupHandlerTest(t, "handler-detail")

	authorCookies := registerAndLogin(t, r, "author")
	_, draft := seedPost(t, gdb, "author", false, handlerNow.Add(-time.Hour))

	// 未登录访客拿到404，隐藏与不存在不可区分
	w := performRequest(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", draft.ID), nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("anonymous: expected 404, got %d", w.Code)
	}

	// 作者本人可以预览自己的草稿
	w = performRequest(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", draft.ID), nil, authorCookies)
	if w.Code != http.StatusOK {
		t.Fatalf("author: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var payload struct {
		Post struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"post"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if payload.Post.Title != "测试文章" {
		t.Fatalf("unexpected title %q", payload.Post.Title)
	}
	if payload.Post.Content == "" {
		t.Fatal("expected rendered markdown content")
	}
}

func TestFeedOmitsHiddenPosts(t *testing.T) {
	r, gdb := setupHandlerTest(t, "handler-feed")

	registerAndLogin(t, r, "author")
	seedPost(t, gdb, "author", true, handlerNow.Add(-time.Hour))
	seedPost(t, gdb, "author", false, handlerNow.Add(-time.Hour))
	seedPost(t, gdb, "author", true, handlerNow.Add(time.Hour))

	w := performRequest(t, r, http.MethodGet, "/posts", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload struct {
		Posts []struct {
			ID uint `json:"id"`
		} `json:"posts"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if payload.Total != 1 || len(payload.Posts) != 1 {
		t.Fatalf("expected one public post, got total=%d len=%d", payload.Total, len(payload.Posts))
	}
}

func TestUpdatePostForbiddenForNonAuthor(t *testing.T) {
	r, gdb := setupHandlerTest(t, "handler-forbidden")

	registerAndLogin(t, r, "alice")
	bobCookies := registerAndLogin(t, r, "bob")
	_, post := seedPost(t, gdb, "alice", true, handlerNow.Add(-time.Hour))

	w := performRequest(t, r, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), gin.H{
		"title": "篡改",
		"text":  "别人的文章",
	}, bobCookies)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", w.Code, w.Body.String())
	}

	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), nil, bobCookies)
	if w.Code != http.StatusForbidden {
		t.Fatalf("delete: expected 403, got %d", w.Code)
	}
}

func TestCreateAndCommentFlow(t *testing.T) {
	r, _ := setupHandlerTest(t, "handler-flow")

	aliceCookies := registerAndLogin(t, r, "alice")
	bobCookies := registerAndLogin(t, r, "bob")

	w := performRequest(t, r, http.MethodPost, "/posts", gin.H{
		"title": "公开文章",
		"text":  "大家好",
	}, aliceCookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created struct {
		Post struct {
			ID uint `json:"id"`
		} `json:"post"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}

	w = performRequest(t, r, http.MethodPost, fmt.Sprintf("/posts/%d/comments", created.Post.ID), gin.H{
		"text": "沙发！",
	}, bobCookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var commentResp struct {
		Comment struct {
			ID     uint   `json:"id"`
			Author string `json:"author"`
		} `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &commentResp); err != nil {
		t.Fatalf("decode comment: %v", err)
	}
	if commentResp.Comment.Author != "bob" {
		t.Fatalf("expected comment author bob, got %q", commentResp.Comment.Author)
	}

	// 文章作者无权修改他人评论
	w = performRequest(t, r, http.MethodPut, fmt.Sprintf("/comments/%d", commentResp.Comment.ID), gin.H{
		"text": "被改掉了",
	}, aliceCookies)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestProfileOwnerSeesDrafts(t *testing.T) {
	r, gdb := setupHandlerTest(t, "handler-profile")

	ownerCookies := registerAndLogin(t, r, "owner")
	seedPost(t, gdb, "owner", true, handlerNow.Add(-time.Hour))
	seedPost(t, gdb, "owner", false, handlerNow.Add(-time.Hour))

	decode := func(w *httptest.ResponseRecorder) int64 {
		var payload struct {
			Total int64 `json:"total"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode profile: %v", err)
		}
		return payload.Total
	}

	w := performRequest(t, r, http.MethodGet, "/users/owner/posts", nil, ownerCookies)
	if w.Code != http.StatusOK {
		t.Fatalf("owner view: expected 200, got %d", w.Code)
	}
	if total := decode(w); total != 2 {
		t.Fatalf("owner should see 2 posts, got %d", total)
	}

	w = performRequest(t, r, http.MethodGet, "/users/owner/posts", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous view: expected 200, got %d", w.Code)
	}
	if total := decode(w); total != 1 {
		t.Fatalf("anonymous should see 1 post, got %d", total)
	}
}

func TestCategoryFeedHiddenCategoryIs404(t *testing.T) {
	r, gdb := setupHandlerTest(t, "handler-category")

	if err := gdb.Create(&db.Category{Title: "内部", Slug: "internal", IsPublished: false}).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	w := performRequest(t, r, http.MethodGet, "/categories/internal/posts", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for hidden category, got %d", w.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r, _ := setupHandlerTest(t, "handler-login")

	registerAndLogin(t, r, "carol")

	w := performRequest(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "carol",
		"password": "wrong",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
