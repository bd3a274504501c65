package router

import (
	"net/http"
	"strings"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/handler"
	"github.com/agencysite/internal/render"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	api := handler.NewAPI(gdb, cfg, render.MustNew(), log)
	resources := api.ContentResources()

	r := gin.New()
	r.Use(handler.Recovery(log), handler.RequestLogger(log))

	// 配置会话中间件：单一服务端校验的 adminAuth cookie
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   handler.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(handler.SessionCookieName, store))

	// 静态文件服务
	uploadURL := "/" + strings.Trim(cfg.UploadURLPath, "/")
	if cfg.UploadDir != "" && uploadURL != "/" {
		r.Static(uploadURL, cfg.UploadDir)
	}
	r.StaticFS(render.StaticURLPath, http.FS(render.Assets()))

	r.GET("/healthz", api.HealthCheck)

	// 公开页面
	r.GET("/", api.ShowHome)
	r.GET("/pages/:slug", api.ShowPage)
	r.GET("/services/:slug", api.ShowService)
	r.GET("/industries/:slug", api.ShowIndustry)
	r.GET("/technologies/:slug", api.ShowTechnology)
	r.GET("/digital-services/:slug", api.ShowDigitalService)

	// 后台页面
	r.GET("/admin/login", api.ShowLoginPage)
	admin := r.Group("/admin")
	admin.Use(handler.AuthRequired())
	{
		admin.GET("", api.ShowDashboard)
		admin.GET("/preview/pages/:id", api.ShowPagePreview)
	}

	apiGroup := r.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		auth.POST("/login", api.Login)
		auth.GET("/check", api.CheckAuth)
		auth.POST("/check", api.CheckAuth)
		auth.GET("/logout", api.Logout)
		auth.POST("/logout", api.Logout)

		forms := apiGroup.Group("/forms")
		forms.POST("/contact", api.SubmitContact)
		forms.POST("/consultation", api.SubmitConsultation)
		forms.POST("/freelancer", api.SubmitFreelancer)
		forms.POST("/quote", api.SubmitQuote)

		// 只读接口对外开放，草稿仅对管理员可见
		for segment, routes := range resources {
			apiGroup.GET("/"+segment, routes.List)
		}
		apiGroup.GET("/components", api.GetComponents)
		apiGroup.GET("/navigation", api.GetNavigation)
		apiGroup.GET("/navigation/tree", api.GetNavigationTree)
		apiGroup.GET("/home-page", api.GetHomePage)
		apiGroup.GET("/home-page/:block", api.GetHomeBlock)

		// 需要认证的管理接口
		secured := apiGroup.Group("")
		secured.Use(handler.APIAuthRequired())
		{
			for segment, routes := range resources {
				secured.POST("/"+segment, routes.Create)
				secured.PUT("/"+segment+"/:id", routes.Update)
				secured.DELETE("/"+segment+"/:id", routes.Delete)
			}

			secured.POST("/components", api.CreateComponent)
			secured.PUT("/components/:id", api.UpdateComponent)
			secured.DELETE("/components/:id", api.DeleteComponent)

			secured.POST("/navigation", api.CreateNavigation)
			secured.PUT("/navigation/reorder", api.ReorderNavigation)
			secured.PUT("/navigation/:id", api.UpdateNavigation)
			secured.DELETE("/navigation/:id", api.DeleteNavigation)

			secured.PUT("/home-page/:block", api.SaveHomeBlock)

			secured.POST("/preview/sections", api.PreviewSections)
			secured.POST("/upload/image", api.UploadImage)

			// 维护接口保留历史 GET 路径，同时提供 POST
			for path, h := range map[string]gin.HandlerFunc{
				"/seed/navigation":     api.SeedNavigation,
				"/add-blog-navigation": api.AddBlogNavigation,
				"/fix-blog-navigation": api.FixBlogNavigation,
			} {
				secured.GET(path, h)
				secured.POST(path, h)
			}
		}
	}

	r.NoRoute(api.NotFound)

	return r
}
