package main

import (
	"log"

	"github.com/chaoscards/internal/config"
	"github.com/chaoscards/internal/db"
	"github.com/chaoscards/internal/logging"
	"github.com/chaoscards/internal/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.GinMode); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Log.Sync()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logging.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	// 按需创建初始管理账号
	if err := db.EnsureUser(cfg.RootUserName, cfg.RootUserPassword); err != nil {
		logging.Log.Fatal("failed to ensure root user", zap.Error(err))
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret, cfg.TemplateDir, cfg.UploadDir, cfg.UploadURLPath)
	logging.Log.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logging.Log.Fatal("failed to run server", zap.Error(err))
	}
}
