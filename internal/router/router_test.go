package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "admin@agency.dev"
	testAdminPassword = "correct-horse"
)

type testSite struct {
	t      *testing.T
	db     *gorm.DB
	server *httptest.Server
	client *http.Client
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Open(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.EnsureAdmin(gdb, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	cfg := config.AppConfig{
		SessionSecret: "test-secret",
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		SiteName:      "Agency",
		PageCacheTTL:  time.Minute,
	}
	server := httptest.NewServer(SetupRouter(gdb, cfg, nil))

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Cleanup(func() {
		server.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &testSite{t: t, db: gdb, server: server, client: client}
}

func (s *testSite) do(method, path string, body any) (*http.Response, []byte) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	if err != nil {
		s.t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("failed to read body: %v", err)
	}
	return resp, data
}

func (s *testSite) login() {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if resp.StatusCode != http.StatusOK {
		s.t.Fatalf("login failed with %d: %s", resp.StatusCode, body)
	}
}

func decodeMap(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode %s: %v", body, err)
	}
	return out
}

func TestAuthSessionLifecycle(t *testing.T) {
	site := newTestSite(t)

	resp, body := site.do(http.MethodPost, "/api/auth/login", map[string]string{"email": testAdminEmail, "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp.StatusCode)
	}

	_, body = site.do(http.MethodGet, "/api/auth/check", nil)
	if decodeMap(t, body)["authenticated"] != false {
		t.Fatalf("expected unauthenticated check, got %s", body)
	}

	var sessionCookie *http.Cookie
	resp, _ = site.do(http.MethodPost, "/api/auth/login", map[string]string{"email": testAdminEmail, "password": testAdminPassword})
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "adminAuth" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || !sessionCookie.HttpOnly || sessionCookie.MaxAge != 24*60*60 {
		t.Fatalf("expected an HTTP-only adminAuth cookie valid for 24h, got %#v", sessionCookie)
	}

	_, body = site.do(http.MethodGet, "/api/auth/check", nil)
	if decodeMap(t, body)["authenticated"] != true {
		t.Fatalf("expected authenticated check, got %s", body)
	}

	resp, _ = site.do(http.MethodGet, "/admin", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard for admin, got %d", resp.StatusCode)
	}

	site.do(http.MethodPost, "/api/auth/logout", nil)
	_, body = site.do(http.MethodGet, "/api/auth/check", nil)
	if decodeMap(t, body)["authenticated"] != false {
		t.Fatalf("expected logout to clear the session, got %s", body)
	}
}

func TestAdminPagesRedirectToLogin(t *testing.T) {
	site := newTestSite(t)

	for _, path := range []string{"/admin", "/admin/preview/pages/1"} {
		resp, _ := site.do(http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/login" {
			t.Fatalf("expected %s to redirect to login, got %d %q", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}

	resp, body := site.do(http.MethodGet, "/admin/login", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "login-form") {
		t.Fatalf("expected login page, got %d", resp.StatusCode)
	}
}

func TestMutatingAPIRequiresSession(t *testing.T) {
	site := newTestSite(t)

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/services"},
		{http.MethodPut, "/api/pages/1"},
		{http.MethodDelete, "/api/navigation/1"},
		{http.MethodGet, "/api/seed/navigation"},
		{http.MethodGet, "/api/add-blog-navigation"},
		{http.MethodGet, "/api/fix-blog-navigation"},
		{http.MethodPut, "/api/home-page/hero-slides"},
	}
	for _, tc := range cases {
		resp, _ := site.do(tc.method, tc.path, map[string]any{})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}

	resp, body := site.do(http.MethodGet, "/api/services", nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected public empty list, got %d %s", resp.StatusCode, body)
	}
}

func TestServiceLifecycleEndToEnd(t *testing.T) {
	site := newTestSite(t)
	site.login()

	payload := map[string]any{"title": "Cloud Migration", "slug": "cloud-migration", "subtitle": "Move to the cloud"}
	resp, body := site.do(http.MethodPost, "/api/services", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	created := decodeMap(t, body)
	if created["status"] != "draft" {
		t.Fatalf("expected draft status, got %v", created["status"])
	}
	if challenges, ok := created["challenges"].([]any); !ok || len(challenges) != 0 {
		t.Fatalf("expected empty challenges, got %#v", created["challenges"])
	}
	description, ok := created["description"].(map[string]any)
	if !ok {
		t.Fatalf("expected description object, got %#v", created["description"])
	}
	if intro, ok := description["intro"].([]any); !ok || len(intro) != 0 || description["conclusion"] != "" {
		t.Fatalf("expected empty description, got %#v", description)
	}
	id := uint(created["id"].(float64))

	dup := map[string]any{"title": "Other", "slug": "cloud-migration", "subtitle": "Again"}
	resp, body = site.do(http.MethodPost, "/api/services", dup)
	if resp.StatusCode != http.StatusConflict || !strings.Contains(string(body), "slug") {
		t.Fatalf("expected slug conflict, got %d: %s", resp.StatusCode, body)
	}
	_, body = site.do(http.MethodGet, "/api/services?slug=cloud-migration", nil)
	if decodeMap(t, body)["title"] != "Cloud Migration" {
		t.Fatalf("expected original record to be unchanged, got %s", body)
	}

	resp, _ = site.do(http.MethodGet, "/services/cloud-migration", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected drafts to be hidden from the public site, got %d", resp.StatusCode)
	}

	resp, body = site.do(http.MethodPut, fmt.Sprintf("/api/services/%d", id), map[string]any{"isPublished": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	_, body = site.do(http.MethodGet, fmt.Sprintf("/api/services?id=%d", id), nil)
	if decodeMap(t, body)["status"] != "published" {
		t.Fatalf("expected published status, got %s", body)
	}

	resp, body = site.do(http.MethodGet, "/services/cloud-migration", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Move to the cloud") || resp.Header.Get("X-Cache") != "MISS" {
		t.Fatalf("expected rendered service page, got %d %q", resp.StatusCode, resp.Header.Get("X-Cache"))
	}
	resp, _ = site.do(http.MethodGet, "/services/cloud-migration", nil)
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Fatalf("expected cached page, got %q", resp.Header.Get("X-Cache"))
	}
	site.do(http.MethodPut, fmt.Sprintf("/api/services/%d", id), map[string]any{"subtitle": "Lift and shift"})
	resp, body = site.do(http.MethodGet, "/services/cloud-migration", nil)
	if resp.Header.Get("X-Cache") != "MISS" || !strings.Contains(string(body), "Lift and shift") {
		t.Fatalf("expected cache invalidation after update, got %q", resp.Header.Get("X-Cache"))
	}

	resp, _ = site.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete to succeed, got %d", resp.StatusCode)
	}
	resp, _ = site.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", id), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing record, got %d", resp.StatusCode)
	}
	resp, _ = site.do(http.MethodGet, "/api/services?id=999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestValidationErrorsReturn400(t *testing.T) {
	site := newTestSite(t)
	site.login()

	resp, body := site.do(http.MethodPost, "/api/industries", map[string]any{"slug": "health", "subtitle": "x"})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(string(body), "title") {
		t.Fatalf("expected 400 for missing title, got %d: %s", resp.StatusCode, body)
	}

	resp, body = site.do(http.MethodPost, "/api/pages", map[string]any{
		"title": "Landing", "slug": "landing",
		"sections": []map[string]any{{"component": "carousel", "data": map[string]any{}}},
	})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(string(body), "sections[0]") {
		t.Fatalf("expected 400 for unknown section, got %d: %s", resp.StatusCode, body)
	}
}

func TestContactFormEndToEnd(t *testing.T) {
	site := newTestSite(t)

	form := map[string]any{"name": "Ada", "email": "ada@example.com", "message": "short"}
	resp, body := site.do(http.MethodPost, "/api/forms/contact", form)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(string(body), "10") {
		t.Fatalf("expected 400 citing the minimum length, got %d: %s", resp.StatusCode, body)
	}
	fields, ok := decodeMap(t, body)["fields"].([]any)
	if !ok || len(fields) != 1 || fields[0].(map[string]any)["field"] != "message" {
		t.Fatalf("expected a message field error, got %s", body)
	}

	form["message"] = "hello there!"
	resp, body = site.do(http.MethodPost, "/api/forms/contact", form)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected success, got %d: %s", resp.StatusCode, body)
	}
	ack := decodeMap(t, body)
	if ack["success"] != true || ack["reference"] == "" {
		t.Fatalf("unexpected acknowledgement: %s", body)
	}
}

func TestPageRenderingAndPreview(t *testing.T) {
	site := newTestSite(t)
	site.login()

	resp, body := site.do(http.MethodPost, "/api/pages", map[string]any{
		"title": "FAQ", "slug": "faq",
		"sections": []map[string]any{
			{"component": "hero", "data": map[string]any{"title": "Questions?"}},
			{"component": "faq", "data": map[string]any{"items": []any{}}},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	id := uint(decodeMap(t, body)["id"].(float64))

	resp, body = site.do(http.MethodGet, fmt.Sprintf("/admin/preview/pages/%d", id), nil)
	if resp.StatusCode != http.StatusOK || strings.Count(string(body), `class="faq-item`) != 3 {
		t.Fatalf("expected preview with three placeholder FAQ entries, got %d", resp.StatusCode)
	}

	resp, body = site.do(http.MethodPost, "/api/preview/sections", map[string]any{
		"sections": []map[string]any{{"component": "pricing"}},
	})
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "section-pricing") {
		t.Fatalf("expected pricing preview, got %d: %s", resp.StatusCode, body)
	}

	resp, _ = site.do(http.MethodGet, "/pages/faq", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected draft page to be hidden, got %d", resp.StatusCode)
	}
	site.do(http.MethodPut, fmt.Sprintf("/api/pages/%d", id), map[string]any{"isPublished": true})
	resp, body = site.do(http.MethodGet, "/pages/faq", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Questions?") {
		t.Fatalf("expected published page, got %d", resp.StatusCode)
	}
}

func TestNavigationEndpoints(t *testing.T) {
	site := newTestSite(t)
	site.login()

	resp, body := site.do(http.MethodGet, "/api/seed/navigation", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected seed to succeed, got %d: %s", resp.StatusCode, body)
	}
	_, body = site.do(http.MethodGet, "/api/seed/navigation", nil)
	result := decodeMap(t, body)["result"].(map[string]any)
	if result["created"] != float64(0) {
		t.Fatalf("expected second seed to be a no-op, got %s", body)
	}

	resp, body = site.do(http.MethodPost, "/api/navigation", map[string]any{"title": "Partners", "type": "dropdown"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	rootID := decodeMap(t, body)["id"].(float64)

	resp, body = site.do(http.MethodPost, "/api/navigation", map[string]any{"title": "Cloud", "parentId": rootID})
	child := decodeMap(t, body)
	if resp.StatusCode != http.StatusCreated || child["level"] != float64(1) || child["type"] != "subheading" {
		t.Fatalf("expected level 1 subheading, got %d: %s", resp.StatusCode, body)
	}
	resp, body = site.do(http.MethodPost, "/api/navigation", map[string]any{"title": "AWS", "parentId": child["id"], "url": "/partners/aws"})
	grandchild := decodeMap(t, body)
	if resp.StatusCode != http.StatusCreated || grandchild["level"] != float64(2) {
		t.Fatalf("expected level 2 item, got %d: %s", resp.StatusCode, body)
	}

	resp, body = site.do(http.MethodGet, "/api/navigation/tree?active=true", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/partners/aws") {
		t.Fatalf("expected tree to contain the new item, got %d: %s", resp.StatusCode, body)
	}

	resp, _ = site.do(http.MethodDelete, fmt.Sprintf("/api/navigation/%d", uint(rootID)), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected cascade delete to succeed, got %d", resp.StatusCode)
	}
	var residual int64
	subtree := []uint{uint(rootID), uint(child["id"].(float64)), uint(grandchild["id"].(float64))}
	site.db.Model(&db.NavigationItem{}).Where("id IN ?", subtree).Count(&residual)
	if residual != 0 {
		t.Fatalf("expected subtree to be removed, %d rows left", residual)
	}

	resp, body = site.do(http.MethodGet, "/api/add-blog-navigation", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"created":1`) {
		t.Fatalf("expected blog link to be added, got %d: %s", resp.StatusCode, body)
	}
	resp, body = site.do(http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `href="/blog"`) {
		t.Fatalf("expected home page menu to include the blog link, got %d", resp.StatusCode)
	}
}

func TestHomePageBlocks(t *testing.T) {
	site := newTestSite(t)
	site.login()

	resp, body := site.do(http.MethodPut, "/api/home-page/services-grid", []map[string]any{
		{"title": "Web", "description": "Sites that convert", "link": "/services/web-development"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	resp, body = site.do(http.MethodGet, "/api/home-page/services-grid", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Sites that convert") {
		t.Fatalf("expected stored block, got %d: %s", resp.StatusCode, body)
	}
	resp, body = site.do(http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/services/web-development") {
		t.Fatalf("expected home page to render the services grid, got %d", resp.StatusCode)
	}

	resp, _ = site.do(http.MethodGet, "/api/home-page/unknown", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown block, got %d", resp.StatusCode)
	}
	resp, _ = site.do(http.MethodPut, "/api/home-page/image-pairs", []map[string]any{{"left": "/a.png"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid block, got %d", resp.StatusCode)
	}
}

func TestUploadImageServesStoredFile(t *testing.T) {
	site := newTestSite(t)
	site.login()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("image", "pixel.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(img.Bytes())
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, site.server.URL+"/api/upload/image", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := site.client.Do(req)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	uploaded := decodeMap(t, body)
	if uploaded["width"] != float64(4) || uploaded["height"] != float64(3) {
		t.Fatalf("unexpected dimensions: %s", body)
	}

	resp, data := site.do(http.MethodGet, uploaded["url"].(string), nil)
	if resp.StatusCode != http.StatusOK || !bytes.Equal(data, img.Bytes()) {
		t.Fatalf("expected stored file to be served, got %d", resp.StatusCode)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	site := newTestSite(t)

	resp, body := site.do(http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK || decodeMap(t, body)["status"] != "ok" {
		t.Fatalf("expected healthy response, got %d: %s", resp.StatusCode, body)
	}
	resp, body = site.do(http.MethodGet, "/api/nothing-here", nil)
	if resp.StatusCode != http.StatusNotFound || decodeMap(t, body)["error"] == nil {
		t.Fatalf("expected JSON 404, got %d: %s", resp.StatusCode, body)
	}
	resp, _ = site.do(http.MethodGet, "/no/such/page", nil)
	if resp.StatusCode != http.StatusNotFound || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("expected HTML 404, got %d", resp.StatusCode)
	}
}

func TestPlaceholderImagesAreServed(t *testing.T) {
	site := newTestSite(t)
	site.login()

	_, body := site.do(http.MethodPost, "/api/preview/sections", map[string]any{
		"sections": []map[string]any{{"component": "hero"}},
	})
	var preview struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(body, &preview); err != nil {
		t.Fatalf("failed to decode preview: %v", err)
	}
	const placeholder = "/static/images/placeholder.svg"
	if !strings.Contains(preview.HTML, placeholder) {
		t.Fatalf("expected hero preview to use the placeholder image, got %s", preview.HTML)
	}

	for _, path := range []string{placeholder, "/static/images/avatar-placeholder.svg"} {
		resp, data := site.do(http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK || !bytes.Contains(data, []byte("<svg")) {
			t.Fatalf("expected %s to be served, got %d", path, resp.StatusCode)
		}
	}
}
