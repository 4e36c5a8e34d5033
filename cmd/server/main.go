package main

import (
	"log"

	"github.com/blogium/internal/config"
	"github.com/blogium/internal/db"
	"github.com/blogium/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 文件可选，缺失时直接读取进程环境变量
	_ = godotenv.Load()
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 可选的初始账号，便于空库启动
	if err := db.EnsureUser(cfg.SeedUsername, cfg.SeedPassword); err != nil {
		log.Fatalf("failed to ensure seed user: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.Setup(cfg.SessionSecret, db.DB)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
