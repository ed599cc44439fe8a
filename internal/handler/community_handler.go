package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/service"
)

type CommunityHandler struct {
	svc     *service.CommunityService
	baseURL string
}

func NewCommunityHandler(svc *service.CommunityService, baseURL string) *CommunityHandler {
	return &CommunityHandler{svc: svc, baseURL: baseURL}
}

// List 管理端社区列表，带成员数
func (h *CommunityHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err, "获取社区列表失败")
		return
	}
	ok(c, http.StatusOK, list, "")
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req service.CommunityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}

	community, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "创建社区失败")
		return
	}

	base := baseURL(c, h.baseURL)
	ok(c, http.StatusCreated, gin.H{
		"community": community,
		"formUrl":   base + service.FormPath(community.Slug),
		"listUrl":   base + service.ListPath(community.Slug),
	}, "社区创建成功")
}

func (h *CommunityHandler) Update(c *gin.Context) {
	var req service.CommunityUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}

	community, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err, "更新社区失败")
		return
	}
	ok(c, http.StatusOK, community, "社区更新成功")
}

// Delete 连同成员一起删除
func (h *CommunityHandler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "删除社区失败")
		return
	}
	ok(c, http.StatusOK, gin.H{"removedMembers": removed}, "社区删除成功")
}
