package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
)

// GroupController handles group formation and project metadata endpoints
type GroupController struct {
	groupService services.IGroupService
	logger       zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.IGroupService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService: groupService,
		logger:       logger,
	}
}

// SendInvite invites another student
func (c *GroupController) SendInvite(ctx *gin.Context) {
	var req dto.SendInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	invite, err := c.groupService.SendInvite(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Invite sent", invite))
}

// RespondInvite accepts or rejects a pending invite
func (c *GroupController) RespondInvite(ctx *gin.Context) {
	var req dto.RespondInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.groupService.RespondInvite(ctx, middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Invite "+req.Action+"ed", nil))
}

// LeaveGroup removes the caller from their group
func (c *GroupController) LeaveGroup(ctx *gin.Context) {
	if err := c.groupService.LeaveGroup(ctx, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Left group", nil))
}

// GetMyGroup returns the caller's group with its roster
func (c *GroupController) GetMyGroup(ctx *gin.Context) {
	detail, err := c.groupService.GetMyGroup(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", detail))
}

// UpdateProject sets the group's project title and description
func (c *GroupController) UpdateProject(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.groupService.UpdateProject(ctx, middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Project updated", nil))
}

// UpdateDocumentLink sets the group's shared document link
func (c *GroupController) UpdateDocumentLink(ctx *gin.Context) {
	var req dto.UpdateDocumentLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.groupService.UpdateDocumentLink(ctx, middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Document link updated", nil))
}
