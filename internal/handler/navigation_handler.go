package handler

import (
	"net/http"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// GetNavigation 返回扁平导航列表，或通过 ?id= 返回单个节点。
func (a *API) GetNavigation(c *gin.Context) {
	id, hasID, err := parseUintQuery(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if hasID {
		item, err := a.navigation.Get(id)
		if err != nil {
			a.respondServiceError(c, err, "failed to load navigation item")
			return
		}
		c.JSON(http.StatusOK, item)
		return
	}

	items, err := a.navigation.List()
	if err != nil {
		a.respondServiceError(c, err, "failed to list navigation")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetNavigationTree 返回三级菜单树；?active=true 时隐藏停用节点。
func (a *API) GetNavigationTree(c *gin.Context) {
	tree, err := a.navigation.Tree(queryBool(c, "active"))
	if err != nil {
		a.respondServiceError(c, err, "failed to build navigation tree")
		return
	}
	if tree == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, tree)
}

// CreateNavigation 新建导航项，层级由父节点推导。
func (a *API) CreateNavigation(c *gin.Context) {
	var input service.NavigationInput
	if !bindJSON(c, &input, "invalid navigation payload") {
		return
	}
	item, err := a.navigation.Create(input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create navigation item")
		return
	}
	a.cache.Purge()
	c.JSON(http.StatusCreated, item)
}

// UpdateNavigation 更新导航项。
func (a *API) UpdateNavigation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var input service.NavigationInput
	if !bindJSON(c, &input, "invalid navigation payload") {
		return
	}
	item, err := a.navigation.Update(id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update navigation item")
		return
	}
	a.cache.Purge()
	c.JSON(http.StatusOK, item)
}

// DeleteNavigation 删除导航项及其全部子孙节点。
func (a *API) DeleteNavigation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := a.navigation.Delete(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to delete navigation item")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, service.ErrNavigationNotFound.Error())
		return
	}
	a.cache.Purge()
	c.JSON(http.StatusOK, gin.H{"message": "navigation item deleted", "id": id})
}

// ReorderNavigation 按给定顺序重排同级节点。
func (a *API) ReorderNavigation(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req, "ids are required") {
		return
	}
	if err := a.navigation.Reorder(req.IDs); err != nil {
		a.respondServiceError(c, err, "failed to reorder navigation")
		return
	}
	a.cache.Purge()
	c.JSON(http.StatusOK, gin.H{"message": "navigation reordered"})
}

// SeedNavigation 写入默认导航；重复调用不会产生重复项。
func (a *API) SeedNavigation(c *gin.Context) {
	a.runMaintenance(c, "seed navigation", a.navigation.SeedDefaults)
}

// AddBlogNavigation 在根级追加 Blog 链接。
func (a *API) AddBlogNavigation(c *gin.Context) {
	a.runMaintenance(c, "add blog navigation", a.navigation.AddBlog)
}

// FixBlogNavigation 修复并去重 Blog 导航项。
func (a *API) FixBlogNavigation(c *gin.Context) {
	a.runMaintenance(c, "fix blog navigation", a.navigation.FixBlog)
}

func (a *API) runMaintenance(c *gin.Context, name string, run func() (service.MaintenanceResult, error)) {
	result, err := run()
	if err != nil {
		a.respondServiceError(c, err, name+" failed")
		return
	}
	a.log.Info("maintenance task finished",
		zap.String("task", name),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("removed", result.Removed),
	)
	if result != (service.MaintenanceResult{}) {
		a.cache.Purge()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": name, "result": result})
}
