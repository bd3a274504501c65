package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseUintQuery(c *gin.Context, key string) (uint, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, true, fmt.Errorf("invalid %s", key)
	}
	return uint(id), true, nil
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && value
}

// respondServiceError 将服务层错误映射为 HTTP 状态码：
// 校验失败 400，记录不存在 404，唯一约束冲突 409，其余 500。
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	var fields service.FieldErrors

	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"error": fields.Error(), "fields": fields})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  verr.Error(),
			"fields": service.FieldErrors{{Field: verr.Field, Message: verr.Message}},
		})
	case errors.Is(err, service.ErrContentNotFound),
		errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrComponentNotFound),
		errors.Is(err, service.ErrNavigationNotFound),
		errors.Is(err, service.ErrHomeBlockUnknown):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlugExists), errors.Is(err, service.ErrComponentExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNavigationOrder):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		a.log.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
