package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/middleware"
	"Lee_Directory/internal/service"
)

// PageHandler 服务端渲染的页面
type PageHandler struct {
	communities  *service.CommunityService
	members      *service.MemberService
	stats        *service.StatsService
	auth         *service.AuthService
	cookieSecure bool
}

func NewPageHandler(communities *service.CommunityService, members *service.MemberService,
	stats *service.StatsService, auth *service.AuthService, cookieSecure bool) *PageHandler {
	return &PageHandler{
		communities:  communities,
		members:      members,
		stats:        stats,
		auth:         auth,
		cookieSecure: cookieSecure,
	}
}

// pageError 页面版的错误处理
func (h *PageHandler) pageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommunityNotFound):
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "页面不存在", "Error": "社区不存在"})
	case errors.Is(err, service.ErrMemberNotFound):
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "页面不存在", "Error": "成员不存在"})
	default:
		fail(c, err, "页面加载失败")
	}
}

func (h *PageHandler) Form(c *gin.Context) {
	community, err := h.communities.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "form.html", gin.H{"Title": community.Name, "Community": community})
}

// List 访问码通过 ?accessCode= 传入，未通过时渲染输入框
func (h *PageHandler) List(c *gin.Context) {
	code := c.Query("accessCode")
	community, members, err := h.members.ListForCommunity(c.Request.Context(), c.Param("slug"), code)
	switch {
	case errors.Is(err, service.ErrAccessCodeRequired):
		msg := ""
		if errors.Is(err, service.ErrAccessCodeInvalid) {
			msg = "访问码错误"
		}
		c.HTML(http.StatusForbidden, "list.html", gin.H{
			"Title":              community.Name,
			"Community":          community,
			"RequiresAccessCode": true,
			"Error":              msg,
		})
	case err != nil:
		h.pageError(c, err)
	default:
		c.HTML(http.StatusOK, "list.html", gin.H{"Title": community.Name, "Community": community, "Members": members})
	}
}

func (h *PageHandler) Share(c *gin.Context) {
	shared, err := h.members.GetShared(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "share.html", gin.H{
		"Title":     shared.Member.Name + " · " + shared.Community.Name,
		"Member":    shared.Member,
		"Community": shared.Community,
		"ShareText": shared.ShareText,
	})
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "管理员登录", "Error": "", "Username": ""})
}

// Login 表单登录，成功后跳回之前被拦下的页面
func (h *PageHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Title": "管理员登录", "Error": "请输入用户名和密码", "Username": req.Username})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		status, msg := http.StatusInternalServerError, "登录失败，请重试"
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, "用户名或密码错误"
		case errors.Is(err, service.ErrTooManyAttempts):
			status, msg = http.StatusTooManyRequests, "登录失败次数过多，请稍后再试"
		}
		c.HTML(status, "login.html", gin.H{"Title": "管理员登录", "Error": msg, "Username": req.Username})
		return
	}
	middleware.SetSessionCookie(c, res.Token, int(h.auth.SessionTTL().Seconds()), h.cookieSecure)

	s := sessions.Default(c)
	next, _ := s.Get(middleware.NextPathKey).(string)
	s.Delete(middleware.NextPathKey)
	_ = s.Save()
	c.Redirect(http.StatusFound, safeNext(next))
}

// safeNext 只允许站内路径
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/admin/") || strings.HasPrefix(next, "//") || next == middleware.LoginPath {
		return "/admin/dashboard"
	}
	return next
}

func (h *PageHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	st, err := h.stats.Get(c.Request.Context())
	if err != nil {
		fail(c, err, "获取统计数据失败")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Title": "概览", "Admin": true, "Stats": st})
}

func (h *PageHandler) Communities(c *gin.Context) {
	list, err := h.communities.List(c.Request.Context())
	if err != nil {
		fail(c, err, "获取社区列表失败")
		return
	}
	c.HTML(http.StatusOK, "communities.html", gin.H{"Title": "社区", "Admin": true, "Communities": list})
}

func (h *PageHandler) Members(c *gin.Context) {
	ctx := c.Request.Context()
	communityID := c.DefaultQuery("communityId", "all")
	search := c.Query("search")

	list, err := h.members.Search(ctx, communityID, search)
	if err != nil {
		fail(c, err, "获取成员列表失败")
		return
	}
	communities, err := h.communities.List(ctx)
	if err != nil {
		fail(c, err, "获取社区列表失败")
		return
	}
	c.HTML(http.StatusOK, "members.html", gin.H{
		"Title":       "成员",
		"Admin":       true,
		"Members":     list,
		"Communities": communities,
		"CommunityID": communityID,
		"Search":      search,
	})
}
