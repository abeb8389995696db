package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
)

// SupervisorController handles supervision assignment endpoints
type SupervisorController struct {
	supervisorService services.ISupervisorService
	logger            zerolog.Logger
}

// NewSupervisorController creates a new SupervisorController
func NewSupervisorController(supervisorService services.ISupervisorService, logger zerolog.Logger) *SupervisorController {
	return &SupervisorController{
		supervisorService: supervisorService,
		logger:            logger,
	}
}

// RequestSupervisor asks a supervisor to take the caller's group
func (c *SupervisorController) RequestSupervisor(ctx *gin.Context) {
	var req dto.RequestSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	request, err := c.supervisorService.RequestSupervisor(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Supervision request sent", request))
}

// RespondRequest lets a supervisor accept or reject a pending request
func (c *SupervisorController) RespondRequest(ctx *gin.Context) {
	var req dto.RespondSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.supervisorService.RespondRequest(ctx, middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Request "+req.Action+"ed", nil))
}

// RequestChange opens a change-of-supervisor request
func (c *SupervisorController) RequestChange(ctx *gin.Context) {
	var req dto.SupervisorChangeRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	request, err := c.supervisorService.RequestChange(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Change request submitted", request))
}

// ResolveChange lets a coordinator approve or reject a pending change request
func (c *SupervisorController) ResolveChange(ctx *gin.Context) {
	var req dto.RespondChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.supervisorService.ResolveChange(ctx, middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Change request resolved", nil))
}
