package main

import (
	"fmt"
	"log"
	"time"

	"github.com/blogium/internal/config"
	"github.com/blogium/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据生成器：创建两位作者以及覆盖各种可见性状态的文章
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("已存在文章数据，跳过生成")
		return
	}

	alice := mustUser("alice", "alice123")
	bob := mustUser("bob", "bob123")

	tech := db.Category{Title: "技术", Description: "工程与编程", Slug: "tech", IsPublished: true}
	hidden := db.Category{Title: "内部", Description: "未公开的分类", Slug: "internal", IsPublished: false}
	if err := db.DB.Create(&tech).Error; err != nil {
		log.Fatal("创建分类失败:", err)
	}
	if err := db.DB.Create(&hidden).Error; err != nil {
		log.Fatal("创建分类失败:", err)
	}

	home := db.Location{Name: "上海", IsPublished: true}
	if err := db.DB.Create(&home).Error; err != nil {
		log.Fatal("创建地点失败:", err)
	}

	now := time.Now().UTC()
	posts := []db.Post{
		{Title: "第一篇公开文章", Text: "大家好，这是一篇公开文章。", PubDate: now.Add(-24 * time.Hour), IsPublished: true, UserID: alice.ID, CategoryID: &tech.ID, LocationID: &home.ID},
		{Title: "未分类也公开", Text: "没有分类的文章同样可见。", PubDate: now.Add(-2 * time.Hour), IsPublished: true, UserID: bob.ID},
		{Title: "定时发布", Text: "这篇文章会在明天出现。", PubDate: now.Add(24 * time.Hour), IsPublished: true, UserID: alice.ID, CategoryID: &tech.ID},
		{Title: "草稿", Text: "还没写完。", PubDate: now.Add(-1 * time.Hour), IsPublished: false, UserID: alice.ID},
		{Title: "藏在内部分类", Text: "分类未发布时外人看不到。", PubDate: now.Add(-1 * time.Hour), IsPublished: true, UserID: bob.ID, CategoryID: &hidden.ID},
	}
	for i := range posts {
		if err := db.DB.Create(&posts[i]).Error; err != nil {
			log.Fatal("创建文章失败:", err)
		}
	}

	comments := []db.Comment{
		{Text: "写得不错！", PostID: posts[0].ID, UserID: bob.ID},
		{Text: "谢谢支持。", PostID: posts[0].ID, UserID: alice.ID},
	}
	for i := range comments {
		if err := db.DB.Create(&comments[i]).Error; err != nil {
			log.Fatal("创建评论失败:", err)
		}
	}

	fmt.Println("演示数据生成完成")
	fmt.Println("账号: alice / alice123, bob / bob123")
}

func mustUser(username, password string) *db.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}
	user := db.User{Username: username, Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("创建用户失败:", err)
	}
	return &user
}
