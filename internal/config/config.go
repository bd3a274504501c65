package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	AdminEmail    string
	AdminPassword string
	CookieSecure  bool
	LogLevel      string
	SiteName      string
	PageCacheTTL  time.Duration
}

const (
	defaultAdminEmail    = "admin@agency.dev"
	defaultAdminPassword = "agency-admin"
)

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOrDefault("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  envOrDefault("DATABASE_PATH", "agencysite.db"),
		SessionSecret: envOrDefault("SESSION_SECRET", "agencysite-dev-secret"),
		GinMode:       envOrDefault("GIN_MODE", "release"),
		UploadDir:     envOrDefault("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath: envOrDefault("UPLOAD_URL_PATH", "/static/uploads"),
		AdminEmail:    envOrDefault("ADMIN_EMAIL", defaultAdminEmail),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", defaultAdminPassword),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		SiteName:      envOrDefault("SITE_NAME", "Agency"),
		PageCacheTTL:  envDuration("PAGE_CACHE_TTL", 5*time.Minute),
	}
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
