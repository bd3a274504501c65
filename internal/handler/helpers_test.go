package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/render"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testEmail    = "owner@agency.dev"
	testPassword = "s3cret-pass"
)

func setupHandlerTest(t *testing.T) (*API, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Open(fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", name), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.EnsureAdmin(gdb, testEmail, testPassword); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := config.AppConfig{
		SiteName:      "Agency",
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		PageCacheTTL:  time.Minute,
	}
	return NewAPI(gdb, cfg, render.MustNew(), zap.NewNop()), gdb
}

func newSessionEngine() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("handler-test-secret"))
	store.Options(sessions.Options{Path: "/", MaxAge: SessionMaxAge, HttpOnly: true})
	r.Use(sessions.Sessions(SessionCookieName, store))
	return r
}

func performJSON(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("expected %s cookie in response", SessionCookieName)
	return nil
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
