package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxHomeBlockBytes = 1 << 20

// GetHomePage 返回首页全部区块。
func (a *API) GetHomePage(c *gin.Context) {
	content, err := a.home.Content()
	if err != nil {
		a.respondServiceError(c, err, "failed to load home page")
		return
	}
	c.JSON(http.StatusOK, content)
}

// GetHomeBlock 返回单个首页区块。
func (a *API) GetHomeBlock(c *gin.Context) {
	payload, err := a.home.Block(c.Param("block"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load home block")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// SaveHomeBlock 替换单个首页区块，并让首页缓存失效。
func (a *API) SaveHomeBlock(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxHomeBlockBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read request body")
		return
	}
	payload, err := a.home.SaveBlock(c.Param("block"), json.RawMessage(raw))
	if err != nil {
		a.respondServiceError(c, err, "failed to save home block")
		return
	}
	a.cache.Invalidate("/")
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
