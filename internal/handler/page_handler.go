package handler

import (
	"net/http"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/render"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	Sections []db.Section `json:"sections"`
}

// PreviewSections 校验并渲染一组未保存的区块，返回 HTML 片段。
func (a *API) PreviewSections(c *gin.Context) {
	var req previewRequest
	if !bindJSON(c, &req, "invalid preview payload") {
		return
	}
	sections, err := service.NormalizeSections(req.Sections)
	if err != nil {
		a.respondServiceError(c, err, "failed to preview sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"html":     string(a.renderer.Sections(sections)),
		"sections": sections,
	})
}

// ShowPagePreview 渲染已保存页面（不论是否发布），不经过页面缓存。
func (a *API) ShowPagePreview(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.NotFound(c)
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		status, name, data := a.errorPage(c, err)
		a.renderPage(c, status, name, data)
		return
	}

	data := a.layout(c, page.Title, page.Description, render.PageView{
		PageID:   page.ID,
		Slug:     page.Slug,
		Status:   page.Status,
		Sections: a.renderer.Sections(page.Sections),
	})
	data.Preview = true
	c.Header("Cache-Control", "no-store")
	a.renderPage(c, http.StatusOK, render.PageAdminPreview, data)
}
