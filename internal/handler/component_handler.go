package handler

import (
	"net/http"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

// GetComponents 返回组件目录，或通过 ?id= 返回单个组件。
func (a *API) GetComponents(c *gin.Context) {
	id, hasID, err := parseUintQuery(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if hasID {
		component, err := a.components.Get(id)
		if err != nil {
			a.respondServiceError(c, err, "failed to load component")
			return
		}
		c.JSON(http.StatusOK, component)
		return
	}

	components, err := a.components.List()
	if err != nil {
		a.respondServiceError(c, err, "failed to list components")
		return
	}
	c.JSON(http.StatusOK, components)
}

// CreateComponent 新建组件。
func (a *API) CreateComponent(c *gin.Context) {
	var input service.ComponentInput
	if !bindJSON(c, &input, "invalid component payload") {
		return
	}
	component, err := a.components.Create(input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create component")
		return
	}
	c.JSON(http.StatusCreated, component)
}

// UpdateComponent 更新组件。
func (a *API) UpdateComponent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var input service.ComponentInput
	if !bindJSON(c, &input, "invalid component payload") {
		return
	}
	component, err := a.components.Update(id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update component")
		return
	}
	c.JSON(http.StatusOK, component)
}

// DeleteComponent 删除组件。
func (a *API) DeleteComponent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := a.components.Delete(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to delete component")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, service.ErrComponentNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "component deleted", "id": id})
}
