package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarship/internal/app/models/dto"
)

const healthTimeout = 2 * time.Second

// HealthController reports liveness
type HealthController struct {
	db HealthChecker
}

// NewHealthController creates a new HealthController
func NewHealthController(db HealthChecker) *HealthController {
	return &HealthController{db: db}
}

// Health pings the database
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		resp := dto.NewSuccessResponse(dto.HealthResponse{Status: "degraded", Database: "unreachable"}, "")
		resp.Success = false
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok", Database: "ok"}, ""))
}

// Ping answers pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
