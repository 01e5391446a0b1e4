package controllers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/logger"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

func (ctl *HealthController) Health(c *ctx.Context) {
	pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(pingCtx, ctl.db); err != nil {
		logger.WithCtx(c.Context()).Error("health check failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	c.Success(response.Map{
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (ctl *HealthController) Index(c *ctx.Context) {
	c.Success(response.Map{
		"message": "Store Rating API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":   "/api/auth",
			"user":   "/api/user",
			"admin":  "/api/admin",
			"owner":  "/api/owner",
			"health": "/api/health",
		},
	})
}
