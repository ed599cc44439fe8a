package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/service"
)

// PublicHandler 无需登录的社区接口
type PublicHandler struct {
	communities *service.CommunityService
	members     *service.MemberService
	baseURL     string
}

func NewPublicHandler(communities *service.CommunityService, members *service.MemberService, baseURL string) *PublicHandler {
	return &PublicHandler{communities: communities, members: members, baseURL: baseURL}
}

// GetCommunity 只返回 id/name/slug，不暴露访问码
func (h *PublicHandler) GetCommunity(c *gin.Context) {
	community, err := h.communities.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "获取社区信息失败")
		return
	}
	ok(c, http.StatusOK, gin.H{"community": gin.H{
		"id":   community.ID,
		"name": community.Name,
		"slug": community.Slug,
	}}, "")
}

// ListMembers ?accessCode=
func (h *PublicHandler) ListMembers(c *gin.Context) {
	community, members, err := h.members.ListForCommunity(c.Request.Context(), c.Param("slug"), c.Query("accessCode"))
	if err != nil {
		fail(c, err, "获取成员列表失败")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"communityName": community.Name,
		"members":       members,
	}, "")
}

func (h *PublicHandler) SubmitMember(c *gin.Context) {
	var req service.MemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}

	member, community, err := h.members.Submit(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		fail(c, err, "提交失败，请重试")
		return
	}

	base := baseURL(c, h.baseURL)
	ok(c, http.StatusCreated, gin.H{
		"id":       member.ID,
		"name":     member.Name,
		"listUrl":  base + service.ListPath(community.Slug),
		"shareUrl": base + service.SharePath(community.Slug, member.ID),
	}, "提交成功！")
}

// GetMember 分享链接用，不需要访问码
func (h *PublicHandler) GetMember(c *gin.Context) {
	shared, err := h.members.GetShared(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		fail(c, err, "获取成员信息失败")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"member": shared.Member,
		"community": gin.H{
			"name": shared.Community.Name,
			"slug": shared.Community.Slug,
		},
		"shareText": shared.ShareText,
	}, "")
}
