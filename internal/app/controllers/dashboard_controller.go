package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
)

// DashboardController handles the per-role landing page endpoints
type DashboardController struct {
	dashboardService services.IDashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.IDashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Student returns the student landing page
func (c *DashboardController) Student(ctx *gin.Context) {
	dashboard, err := c.dashboardService.StudentDashboard(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", dashboard))
}

// Supervisor returns the supervisor landing page
func (c *DashboardController) Supervisor(ctx *gin.Context) {
	dashboard, err := c.dashboardService.SupervisorDashboard(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", dashboard))
}

// Coordinator returns the coordinator landing page
func (c *DashboardController) Coordinator(ctx *gin.Context) {
	dashboard, err := c.dashboardService.CoordinatorDashboard(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", dashboard))
}
