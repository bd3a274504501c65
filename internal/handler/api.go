package handler

import (
	"time"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/render"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	pages        *service.PageService
	services     *service.OfferingService
	industries   *service.IndustryService
	technologies *service.TechnologyService
	digital      *service.DigitalServiceService
	components   *service.ComponentService
	navigation   *service.NavigationService
	home         *service.HomePageService
	leads        *service.LeadService
	renderer     *render.Renderer
	cache        *PageCache
	log          *zap.Logger
	siteName     string
	uploadDir    string
	uploadURL    string
	now          func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig, renderer *render.Renderer, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		db:           gdb,
		pages:        service.NewPageService(gdb),
		services:     service.NewOfferingService(gdb),
		industries:   service.NewIndustryService(gdb),
		technologies: service.NewTechnologyService(gdb),
		digital:      service.NewDigitalServiceService(gdb),
		components:   service.NewComponentService(gdb),
		navigation:   service.NewNavigationService(gdb),
		home:         service.NewHomePageService(gdb),
		leads:        service.NewLeadService(service.LogSink{Logger: log.Named("leads")}),
		renderer:     renderer,
		cache:        NewPageCache(cfg.PageCacheTTL),
		log:          log,
		siteName:     cfg.SiteName,
		uploadDir:    cfg.UploadDir,
		uploadURL:    cfg.UploadURLPath,
		now:          time.Now,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Cache exposes the rendered page cache.
func (a *API) Cache() *PageCache {
	return a.cache
}

// layout 组装页面公共数据；菜单只包含启用的导航项。
func (a *API) layout(c *gin.Context, title, description string, body any) render.LayoutData {
	menu, err := a.navigation.Tree(true)
	if err != nil {
		a.log.Warn("load navigation menu failed", zap.Error(err))
		c.Error(err)
	}
	return render.LayoutData{
		SiteName:    a.siteName,
		Title:       title,
		Description: description,
		Menu:        menu,
		Year:        a.now().Year(),
		Body:        body,
	}
}

func (a *API) countRow(label string, model any) render.CountRow {
	row := render.CountRow{Label: label}
	a.db.Model(model).Count(&row.Total)
	a.db.Model(model).Where("is_published = ?", true).Count(&row.Published)
	return row
}

func (a *API) dashboardView() render.DashboardView {
	view := render.DashboardView{
		Counts: []render.CountRow{
			a.countRow("Pages", &db.Page{}),
			a.countRow("Services", &db.ServiceOffering{}),
			a.countRow("Industries", &db.Industry{}),
			a.countRow("Technologies", &db.Technology{}),
			a.countRow("Digital services", &db.DigitalService{}),
		},
	}
	a.db.Model(&db.NavigationItem{}).Count(&view.NavigationItems)
	a.db.Model(&db.Component{}).Count(&view.Components)
	return view
}
