package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogium/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
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
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *db.User {
	t.Helper()
	user := db.User{Username: username, Password: "x"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createCategory(t *testing.T, gdb *gorm.DB, slug string, published bool) *db.Category {
	t.Helper()
	category := db.Category{Title: slug, Slug: slug, IsPublished: published}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return &category
}

type postSeed struct {
	title     string
	author    uint
	category  *uint
	published bool
	pubDate   time.Time
}

func createPost(t *testing.T, gdb *gorm.DB, seed postSeed) *db.Post {
	t.Helper()
	post := db.Post{
		Title:       seed.title,
		Text:        "正文：" + seed.title,
		PubDate:     seed.pubDate,
		IsPublished: seed.published,
		UserID:      seed.author,
		CategoryID:  seed.category,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", seed.title, err)
	}
	return &post
}

func createComment(t *testing.T, gdb *gorm.DB, postID, userID uint, text string) *db.Comment {
	t.Helper()
	comment := db.Comment{Text: text, PostID: postID, UserID: userID}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}

// testNow 是服务测试使用的固定时间基准。
var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
