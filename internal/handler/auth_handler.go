package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/middleware"
	"Lee_Directory/internal/service"
)

type AuthHandler struct {
	svc          *service.AuthService
	cookieSecure bool
}

type LoginReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func NewAuthHandler(svc *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// Login 登录接口，成功后写 admin-session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请输入用户名和密码")
		return
	}

	res, err := h.svc.Login(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		fail(c, err, "登录失败，请重试")
		return
	}
	middleware.SetSessionCookie(c, res.Token, int(h.svc.SessionTTL().Seconds()), h.cookieSecure)

	ok(c, http.StatusOK, gin.H{"username": res.Username, "role": res.Role}, "登录成功")
}

// Logout 只清 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	ok(c, http.StatusOK, nil, "登出成功")
}
