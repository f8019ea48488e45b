package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo-api/internal/models"
)

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
