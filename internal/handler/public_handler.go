package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/agencysite/internal/render"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// renderPage 先渲染到缓冲区，模板出错时不会输出半截页面。
func (a *API) renderPage(c *gin.Context, status int, name string, data render.LayoutData) {
	body, err := a.executePage(name, data)
	if err != nil {
		a.log.Error("render page failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, htmlContentType, body)
}

func (a *API) executePage(name string, data render.LayoutData) ([]byte, error) {
	var buf bytes.Buffer
	if err := a.renderer.Page(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cachedPage serves path from the page cache, building it with build on a
// miss. Only 200 responses are cached.
func (a *API) cachedPage(c *gin.Context, build func() (int, string, render.LayoutData)) {
	path := c.Request.URL.Path
	if page, ok := a.cache.Get(path); ok {
		c.Header("X-Cache", "HIT")
		c.Data(page.Status, htmlContentType, page.Body)
		return
	}

	status, name, data := build()
	body, err := a.executePage(name, data)
	if err != nil {
		a.log.Error("render page failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if status == http.StatusOK {
		a.cache.Set(path, CachedPage{Status: status, Body: body})
	}
	c.Header("X-Cache", "MISS")
	c.Data(status, htmlContentType, body)
}

func (a *API) notFoundPage(c *gin.Context) (int, string, render.LayoutData) {
	return http.StatusNotFound, render.PageNotFound, a.layout(c, "Page not found", "", nil)
}

func (a *API) errorPage(c *gin.Context, err error) (int, string, render.LayoutData) {
	if errors.Is(err, service.ErrContentNotFound) || errors.Is(err, service.ErrPageNotFound) {
		return a.notFoundPage(c)
	}
	a.log.Error("load public content failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	data := a.layout(c, "Something went wrong", "", nil)
	return http.StatusInternalServerError, render.PageNotFound, data
}

// ShowHome renders the home page from the stored home blocks.
func (a *API) ShowHome(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		content, err := a.home.Content()
		if err != nil {
			return a.errorPage(c, err)
		}
		return http.StatusOK, render.PageHome, a.layout(c, "Home", "", content)
	})
}

// ShowPage renders a published section-composed page.
func (a *API) ShowPage(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		page, err := a.pages.GetBySlug(c.Param("slug"))
		if err != nil {
			return a.errorPage(c, err)
		}
		if !page.IsPublished {
			return a.notFoundPage(c)
		}
		view := render.PageView{
			PageID:   page.ID,
			Slug:     page.Slug,
			Status:   page.Status,
			Sections: a.renderer.Sections(page.Sections),
		}
		return http.StatusOK, render.PagePage, a.layout(c, page.Title, page.Description, view)
	})
}

// ShowService renders a published service page.
func (a *API) ShowService(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		record, err := a.services.GetBySlug(c.Param("slug"))
		if err != nil {
			return a.errorPage(c, err)
		}
		if !record.IsPublished {
			return a.notFoundPage(c)
		}
		view := render.NewDetailView("service", record.ContentBase,
			render.DetailBlock{Heading: "Challenges", Items: record.Challenges},
			render.DetailBlock{Heading: "Benefits", Items: record.Benefits},
			render.DetailBlock{Heading: "Features", Items: record.Features},
		)
		view.TechStack = record.TechStack
		view.FAQ = record.FAQ
		return http.StatusOK, render.PageDetail, a.layout(c, record.Title, record.Subtitle, view)
	})
}

// ShowIndustry renders a published industry page.
func (a *API) ShowIndustry(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		record, err := a.industries.GetBySlug(c.Param("slug"))
		if err != nil {
			return a.errorPage(c, err)
		}
		if !record.IsPublished {
			return a.notFoundPage(c)
		}
		view := render.NewDetailView("industry", record.ContentBase,
			render.DetailBlock{Heading: "Challenges", Items: record.Challenges},
			render.DetailBlock{Heading: "Solutions", Items: record.Solutions},
			render.DetailBlock{Heading: "Benefits", Items: record.Benefits},
		)
		view.FAQ = record.FAQ
		return http.StatusOK, render.PageDetail, a.layout(c, record.Title, record.Subtitle, view)
	})
}

// ShowTechnology renders a published technology page.
func (a *API) ShowTechnology(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		record, err := a.technologies.GetBySlug(c.Param("slug"))
		if err != nil {
			return a.errorPage(c, err)
		}
		if !record.IsPublished {
			return a.notFoundPage(c)
		}
		view := render.NewDetailView("technology", record.ContentBase,
			render.DetailBlock{Heading: "Features", Items: record.Features},
			render.DetailBlock{Heading: "Use cases", Items: record.UseCases},
		)
		view.TechStack = record.TechStack
		view.FAQ = record.FAQ
		return http.StatusOK, render.PageDetail, a.layout(c, record.Title, record.Subtitle, view)
	})
}

// ShowDigitalService renders a published digital service page.
func (a *API) ShowDigitalService(c *gin.Context) {
	a.cachedPage(c, func() (int, string, render.LayoutData) {
		record, err := a.digital.GetBySlug(c.Param("slug"))
		if err != nil {
			return a.errorPage(c, err)
		}
		if !record.IsPublished {
			return a.notFoundPage(c)
		}
		view := render.NewDetailView("digital-service", record.ContentBase,
			render.DetailBlock{Heading: "Features", Items: record.Features},
			render.DetailBlock{Heading: "Benefits", Items: record.Benefits},
			render.DetailBlock{Heading: "Our process", Items: record.Process},
		)
		view.FAQ = record.FAQ
		return http.StatusOK, render.PageDetail, a.layout(c, record.Title, record.Subtitle, view)
	})
}

// NotFound renders the HTML 404 page, or JSON for /api paths.
func (a *API) NotFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		respondError(c, http.StatusNotFound, "route not found")
		return
	}
	status, name, data := a.notFoundPage(c)
	a.renderPage(c, status, name, data)
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
