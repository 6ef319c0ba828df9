package handlers

import (
	"net/http"
	"strings"

	"drowsiness-dashboard/internal/http/middleware"
	"drowsiness-dashboard/internal/services"
	"drowsiness-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth         services.AuthService
	SecureCookie bool
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "bad_request", "username and password required")
		return
	}

	session, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "rejected")
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "accepted")

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, session)
}

// POST /api/auth/logout
func (h AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /login
func (h AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, loginPageName, loginPageData{Next: safeNext(c.Query("next"))})
}

// POST /login
func (h AuthHandler) LoginSubmit(c *gin.Context) {
	var req loginRequest
	_ = c.ShouldBind(&req)
	req.Username = strings.TrimSpace(req.Username)
	next := safeNext(c.PostForm("next"))

	session, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "rejected")
		c.HTML(http.StatusUnauthorized, loginPageName, loginPageData{
			Next:     next,
			Username: req.Username,
			Error:    "Invalid username or password.",
		})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "accepted")

	h.setSessionCookie(c, session.Token)
	c.Redirect(http.StatusSeeOther, next)
}

// POST /logout
func (h AuthHandler) LogoutSubmit(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h AuthHandler) setSessionCookie(c *gin.Context, token string) {
	// MaxAge 0 keeps a browser-session cookie when tokens do not expire.
	maxAge := 0
	if h.Auth.TTL > 0 {
		maxAge = int(h.Auth.TTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.SecureCookie, true)
}

func (h AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)
}

// safeNext only allows local paths, so the login form cannot be used as an
// open redirect.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/trips"
	}
	return next
}
