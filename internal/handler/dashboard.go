package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edustack/internal/model"
)

// ListUsers never exposes password hashes; model.User omits them from JSON.
func (h *Handler) ListUsers(c *gin.Context) {
	list(h, h.store.ListUsers)(c)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if stats.RecentAttendance == nil {
		stats.RecentAttendance = []model.Attendance{}
	}
	c.JSON(http.StatusOK, stats)
}
