package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/pkg"
)

const (
	SessionCookieName  = "admin-session"
	ContextUsernameKey = "admin_username"
	// NextPathKey 登录后跳回的页面，存在 gin-contrib session 里
	NextPathKey = "next"
	LoginPath   = "/admin/login"
)

// TokenVerifier 只看签名和过期时间
type TokenVerifier interface {
	Verify(token string) (*pkg.SessionClaims, error)
}

func sessionClaims(c *gin.Context, v TokenVerifier) (*pkg.SessionClaims, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return nil, false
	}
	claims, err := v.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// AdminAPI 管理端接口：无令牌、过期、格式错误一律 401
func AdminAPI(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, v)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未登录或登录已过期"})
			return
		}
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// AdminPage 管理端页面：未登录时记下原路径并跳到登录页
func AdminPage(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, v)
		if !ok {
			if c.Request.Method == http.MethodGet {
				s := sessions.Default(c)
				s.Set(NextPathKey, c.Request.URL.RequestURI())
				_ = s.Save()
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// SetSessionCookie http-only、SameSite=Lax
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie 只让浏览器丢掉 cookie，令牌本身在过期前仍然有效
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
