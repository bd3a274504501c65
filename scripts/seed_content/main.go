package main

import (
	"errors"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/logger"
	"github.com/agencysite/internal/service"
	"github.com/joho/godotenv"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	log := logger.Sugar

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	if err := db.EnsureAdmin(db.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}
	log.Infow("管理员账号已就绪", "email", cfg.AdminEmail)

	nav := service.NewNavigationService(db.DB)
	result, err := nav.SeedDefaults()
	if err != nil {
		log.Fatalf("导航初始化失败: %v", err)
	}
	log.Infow("导航初始化完成", "created", result.Created)

	offerings := service.NewOfferingService(db.DB)
	_, err = offerings.Create(service.OfferingInput{
		ContentInput: service.ContentInput{
			Title:       strPtr("Cloud Migration"),
			Slug:        strPtr("cloud-migration"),
			Subtitle:    strPtr("Move workloads to the cloud without downtime"),
			IsPublished: boolPtr(true),
		},
		Challenges: []db.TitledItem{
			{Title: "Legacy infrastructure", Description: "Ageing servers that are costly to maintain."},
		},
		Benefits: []db.TitledItem{
			{Title: "Elastic capacity", Description: "Scale with demand instead of forecasts."},
		},
	})
	switch {
	case errors.Is(err, service.ErrSlugExists):
		log.Infow("示例服务已存在，跳过", "slug", "cloud-migration")
	case err != nil:
		log.Fatalf("创建示例服务失败: %v", err)
	default:
		log.Infow("示例服务已创建", "path", "/services/cloud-migration")
	}

	pages := service.NewPageService(db.DB)
	_, err = pages.Create(service.PageInput{
		Title:       strPtr("About"),
		Slug:        strPtr("about"),
		IsPublished: boolPtr(true),
		Sections: []db.Section{
			{Component: "hero", Data: []byte(`{"title":"About us","subtitle":"A small team shipping big things"}`)},
			{Component: "faq", Data: []byte(`{"items":[]}`)},
		},
	})
	switch {
	case errors.Is(err, service.ErrSlugExists):
		log.Infow("示例页面已存在，跳过", "slug", "about")
	case err != nil:
		log.Fatalf("创建示例页面失败: %v", err)
	default:
		log.Infow("示例页面已创建", "path", "/pages/about")
	}
}
