package main

import (
	"errors"
	"io/fs"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/logger"
	"github.com/agencysite/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 本地开发时从 .env 读取配置，文件不存在则忽略
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	log := logger.Log

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("failed to load .env", zap.Error(envErr))
	}

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err), zap.String("path", cfg.DatabasePath))
	}
	if err := db.EnsureAdmin(db.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("failed to ensure admin account", zap.Error(err))
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, cfg, log)
	log.Info("server starting", zap.String("addr", cfg.ListenAddr), zap.String("mode", cfg.GinMode))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}
