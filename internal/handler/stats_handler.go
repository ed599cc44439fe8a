package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Get(c *gin.Context) {
	st, err := h.svc.Get(c.Request.Context())
	if err != nil {
		fail(c, err, "获取统计数据失败")
		return
	}
	ok(c, http.StatusOK, st, "")
}
