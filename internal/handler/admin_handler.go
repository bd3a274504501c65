package handler

import (
	"net/http"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/render"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookieName 是管理员会话 cookie 的名称。
	SessionCookieName = "adminAuth"
	// SessionMaxAge 为会话有效期（秒），即 24 小时。
	SessionMaxAge = 24 * 60 * 60

	sessionUserKey  = "user_id"
	sessionEmailKey = "email"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login 校验管理员邮箱与密码，成功后写入会话。
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid login payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var user db.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		a.log.Info("admin login rejected", zap.String("email", email))
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		a.log.Info("admin login rejected", zap.String("email", email))
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	session.Set(sessionEmailKey, user.Email)
	if err := session.Save(); err != nil {
		a.log.Error("save admin session failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	a.log.Info("admin logged in", zap.String("email", user.Email))
	c.JSON(http.StatusOK, gin.H{"success": true, "email": user.Email})
}

// CheckAuth 返回当前请求是否携带有效的管理员会话。
func (a *API) CheckAuth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": isAdmin(c)})
}

// Logout 清除会话；浏览器请求会被重定向回登录页。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}

	if c.Request.Method == http.MethodGet && c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func isAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	return session.Get(sessionUserKey) != nil
}

// AuthRequired 保护 /admin 页面，未登录时跳转到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired 保护管理 API，未登录时返回 401 JSON。
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// ShowLoginPage 渲染登录页面；已登录时直接进入面板。
func (a *API) ShowLoginPage(c *gin.Context) {
	if isAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	a.renderPage(c, http.StatusOK, render.PageAdminLogin, a.layout(c, "Admin login", "", nil))
}

// ShowDashboard 渲染后台主面板。
func (a *API) ShowDashboard(c *gin.Context) {
	a.renderPage(c, http.StatusOK, render.PageAdminDashboard, a.layout(c, "Dashboard", "", a.dashboardView()))
}
