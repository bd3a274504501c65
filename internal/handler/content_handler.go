package handler

import (
	"net/http"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

// ContentRoutes is the JSON CRUD surface shared by every slugged entity.
type ContentRoutes interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// contentResource adapts a slugged service to the JSON API. publicPrefix is
// the path prefix of the public pages rendered from it.
type contentResource[T any, In any] struct {
	api          *API
	label        string
	publicPrefix string
	published    func(*T) bool
	list         func(publishedOnly bool) ([]T, error)
	get          func(id uint) (*T, error)
	getBySlug    func(slug string) (*T, error)
	create       func(In) (*T, error)
	update       func(id uint, input In) (*T, error)
	remove       func(id uint) (bool, error)
}

// List returns all records, or one record when ?id= or ?slug= is given.
// Visitors without an admin session only see published records.
func (r *contentResource[T, In]) List(c *gin.Context) {
	publishedOnly := !isAdmin(c) || queryBool(c, "published")

	id, hasID, err := parseUintQuery(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if slug := c.Query("slug"); hasID || slug != "" {
		var record *T
		if hasID {
			record, err = r.get(id)
		} else {
			record, err = r.getBySlug(slug)
		}
		if err != nil {
			r.api.respondServiceError(c, err, "failed to load "+r.label)
			return
		}
		if publishedOnly && !r.published(record) {
			respondError(c, http.StatusNotFound, r.label+" not found")
			return
		}
		c.JSON(http.StatusOK, record)
		return
	}

	records, err := r.list(publishedOnly)
	if err != nil {
		r.api.respondServiceError(c, err, "failed to list "+r.label)
		return
	}
	if records == nil {
		records = []T{}
	}
	c.JSON(http.StatusOK, records)
}

// Create inserts a record and answers 201 with it.
func (r *contentResource[T, In]) Create(c *gin.Context) {
	var input In
	if !bindJSON(c, &input, "invalid "+r.label+" payload") {
		return
	}
	record, err := r.create(input)
	if err != nil {
		r.api.respondServiceError(c, err, "failed to create "+r.label)
		return
	}
	r.api.cache.InvalidatePrefix(r.publicPrefix)
	c.JSON(http.StatusCreated, record)
}

// Update applies the provided fields.
func (r *contentResource[T, In]) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var input In
	if !bindJSON(c, &input, "invalid "+r.label+" payload") {
		return
	}
	record, err := r.update(id, input)
	if err != nil {
		r.api.respondServiceError(c, err, "failed to update "+r.label)
		return
	}
	r.api.cache.InvalidatePrefix(r.publicPrefix)
	c.JSON(http.StatusOK, record)
}

// Delete removes a record.
func (r *contentResource[T, In]) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := r.remove(id)
	if err != nil {
		r.api.respondServiceError(c, err, "failed to delete "+r.label)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, r.label+" not found")
		return
	}
	r.api.cache.InvalidatePrefix(r.publicPrefix)
	c.JSON(http.StatusOK, gin.H{"message": r.label + " deleted", "id": id})
}

func contentPublished[T any, P interface {
	*T
	Base() *db.ContentBase
}](record *T) bool {
	return P(record).Base().IsPublished
}

// ContentResources returns the CRUD handlers keyed by their URL segment.
func (a *API) ContentResources() map[string]ContentRoutes {
	return map[string]ContentRoutes{
		"pages": &contentResource[db.Page, service.PageInput]{
			api: a, label: "page", publicPrefix: "/pages/",
			published: func(p *db.Page) bool { return p.IsPublished },
			list:      a.pages.List, get: a.pages.Get, getBySlug: a.pages.GetBySlug,
			create: a.pages.Create, update: a.pages.Update, remove: a.pages.Delete,
		},
		"services": &contentResource[db.ServiceOffering, service.OfferingInput]{
			api: a, label: "service", publicPrefix: "/services/",
			published: contentPublished[db.ServiceOffering, *db.ServiceOffering],
			list:      a.services.List, get: a.services.Get, getBySlug: a.services.GetBySlug,
			create: a.services.Create, update: a.services.Update, remove: a.services.Delete,
		},
		"industries": &contentResource[db.Industry, service.IndustryInput]{
			api: a, label: "industry", publicPrefix: "/industries/",
			published: contentPublished[db.Industry, *db.Industry],
			list:      a.industries.List, get: a.industries.Get, getBySlug: a.industries.GetBySlug,
			create: a.industries.Create, update: a.industries.Update, remove: a.industries.Delete,
		},
		"technologies": &contentResource[db.Technology, service.TechnologyInput]{
			api: a, label: "technology", publicPrefix: "/technologies/",
			published: contentPublished[db.Technology, *db.Technology],
			list:      a.technologies.List, get: a.technologies.Get, getBySlug: a.technologies.GetBySlug,
			create: a.technologies.Create, update: a.technologies.Update, remove: a.technologies.Delete,
		},
		"digital-services": &contentResource[db.DigitalService, service.DigitalServiceInput]{
			api: a, label: "digital service", publicPrefix: "/digital-services/",
			published: contentPublished[db.DigitalService, *db.DigitalService],
			list:      a.digital.List, get: a.digital.Get, getBySlug: a.digital.GetBySlug,
			create: a.digital.Create, update: a.digital.Update, remove: a.digital.Delete,
		},
	}
}
