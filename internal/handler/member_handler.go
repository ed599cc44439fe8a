package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/service"
)

// MemberHandler 管理端成员接口
type MemberHandler struct {
	svc    *service.MemberService
	export *service.ExportService
}

func NewMemberHandler(svc *service.MemberService, export *service.ExportService) *MemberHandler {
	return &MemberHandler{svc: svc, export: export}
}

// List ?communityId=&search=，communityId=all 表示全部
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.svc.Search(c.Request.Context(), c.Query("communityId"), c.Query("search"))
	if err != nil {
		fail(c, err, "获取成员列表失败")
		return
	}
	ok(c, http.StatusOK, gin.H{"members": members}, "")
}

func (h *MemberHandler) Update(c *gin.Context) {
	var req service.MemberUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	member, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err, "更新成员失败")
		return
	}
	ok(c, http.StatusOK, gin.H{"member": member}, "成员更新成功")
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "删除成员失败")
		return
	}
	ok(c, http.StatusOK, nil, "成员已删除")
}

// Export 全部成员导出为 CSV 附件
func (h *MemberHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.export.WriteCSV(c.Request.Context(), &buf); err != nil {
		fail(c, err, "导出失败")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+h.export.Filename()+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
