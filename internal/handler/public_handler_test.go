package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func newPublicEngine(api *API) http.Handler {
	r := newSessionEngine()
	r.GET("/", api.ShowHome)
	r.GET("/services/:slug", api.ShowService)
	r.GET("/industries/:slug", api.ShowIndustry)
	r.GET("/pages/:slug", api.ShowPage)
	r.NoRoute(api.NotFound)
	return r
}

func TestShowServiceHidesDraftsAndCachesPublished(t *testing.T) {
	api, _ := setupHandlerTest(t)
	r := newPublicEngine(api)

	record, err := api.services.Create(service.OfferingInput{ContentInput: service.ContentInput{
		Title:    strPtr("Data Engineering"),
		Slug:     strPtr("data-engineering"),
		Subtitle: strPtr("Pipelines you can trust"),
	}})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	w := performJSON(r, http.MethodGet, "/services/data-engineering", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected draft to 404, got %d", w.Code)
	}
	if api.cache.Len() != 0 {
		t.Fatalf("expected 404 responses to stay out of the cache")
	}

	if _, err := api.services.Update(record.ID, service.OfferingInput{ContentInput: service.ContentInput{IsPublished: boolPtr(true)}}); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	w = performJSON(r, http.MethodGet, "/services/data-engineering", nil)
	if w.Code != http.StatusOK || w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected fresh render, got %d %q", w.Code, w.Header().Get("X-Cache"))
	}
	if !strings.Contains(w.Body.String(), "Pipelines you can trust") {
		t.Fatalf("expected subtitle in page body")
	}

	w = performJSON(r, http.MethodGet, "/services/data-engineering", nil)
	if w.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected cached render, got %q", w.Header().Get("X-Cache"))
	}
}

func TestShowPageRendersSections(t *testing.T) {
	api, _ := setupHandlerTest(t)
	r := newPublicEngine(api)

	_, err := api.pages.Create(service.PageInput{
		Title:       strPtr("About"),
		Slug:        strPtr("about"),
		IsPublished: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}

	w := performJSON(r, http.MethodGet, "/pages/about", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<title>") {
		t.Fatalf("expected rendered page, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestShowHomeWithoutBlocks(t *testing.T) {
	api, _ := setupHandlerTest(t)
	r := newPublicEngine(api)

	w := performJSON(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected empty home page to render, got %d", w.Code)
	}
}

func TestNotFoundNegotiatesByPath(t *testing.T) {
	api, _ := setupHandlerTest(t)
	r := newPublicEngine(api)

	w := performJSON(r, http.MethodGet, "/api/missing", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"error"`) {
		t.Fatalf("expected JSON 404, got %d %s", w.Code, w.Body.String())
	}
	w = performJSON(r, http.MethodGet, "/industries/unknown", nil)
	if w.Code != http.StatusNotFound || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected HTML 404, got %d", w.Code)
	}
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	api, _ := setupHandlerTest(t)

	cases := []struct {
		err    error
		status int
	}{
		{service.FieldErrors{{Field: "message", Message: "must be at least 10 characters"}}, http.StatusBadRequest},
		{&service.ValidationError{Field: "title", Message: "is required"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", service.ErrContentNotFound), http.StatusNotFound},
		{service.ErrNavigationNotFound, http.StatusNotFound},
		{service.ErrHomeBlockUnknown, http.StatusNotFound},
		{fmt.Errorf("%w: %q", service.ErrSlugExists, "cloud"), http.StatusConflict},
		{service.ErrComponentExists, http.StatusConflict},
		{service.ErrNavigationOrder, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
		api.respondServiceError(c, tc.err, "failed")
		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
	}
}
