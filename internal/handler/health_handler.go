package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client // 可为 nil
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Check 始终 200，由调用方看各组件状态
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	db := componentStatus{Status: "connected"}
	if sqlDB, err := h.db.DB(); err != nil {
		db = componentStatus{Status: "error", Error: err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = componentStatus{Status: "error", Error: err.Error()}
	}

	rdb := componentStatus{Status: "disabled"}
	if h.rdb != nil {
		rdb.Status = "connected"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			rdb = componentStatus{Status: "error", Error: err.Error()}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  db,
		"redis":     rdb,
	})
}
