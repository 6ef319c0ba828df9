package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"drowsiness-dashboard/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	sessionKey    = "session"
)

type TokenValidator interface {
	ValidateToken(token string) (domain.RequestContext, error)
}

// RequireSession only lets requests through that carry a valid session
// token, either as a Bearer header or in the session cookie.
func RequireSession(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := v.ValidateToken(sessionToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(sessionKey, rc)
		c.Next()
	}
}

// RequirePageSession guards browser pages: callers without a valid session
// are redirected to loginPath, which gets the original URI as ?next=.
func RequirePageSession(v TokenValidator, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := v.ValidateToken(sessionToken(c))
		if err != nil {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Set(sessionKey, rc)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	token := bearerFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		}
	}
	return token
}

// GetSession returns the authenticated session set by RequireSession.
func GetSession(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
