package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// PanelController handles evaluation panel and marks endpoints
type PanelController struct {
	panelService services.IPanelService
	marksService services.IMarksService
	logger       zerolog.Logger
}

// NewPanelController creates a new PanelController
func NewPanelController(panelService services.IPanelService, marksService services.IMarksService, logger zerolog.Logger) *PanelController {
	return &PanelController{
		panelService: panelService,
		marksService: marksService,
		logger:       logger,
	}
}

// CreatePanel assigns an evaluation panel to a group
func (c *PanelController) CreatePanel(ctx *gin.Context) {
	var req dto.CreatePanelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	panel, err := c.panelService.CreatePanel(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("groupId", req.GroupID).Msg("Panel created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Panel created", panel))
}

// GetPanel returns the panel assigned to a group
func (c *PanelController) GetPanel(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrBadRequest)
		return
	}

	panel, members, err := c.panelService.GetPanel(ctx, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", gin.H{"panel": panel, "members": members}))
}

// AssignMarks submits component scores for one student
func (c *PanelController) AssignMarks(ctx *gin.Context) {
	var req dto.AssignMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	marks, err := c.marksService.AssignMarks(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Marks saved", marks))
}

// GetMyMarks returns every mark sheet the calling student has received
func (c *PanelController) GetMyMarks(ctx *gin.Context) {
	marks, err := c.marksService.GetStudentMarks(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", marks))
}
